package validate_booking

import (
	"context"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// CatalogProvider supplies the bundle, units and addons under validation.
type CatalogProvider interface {
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	GetBundle(ctx context.Context, id string) (*domain.Bundle, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
	GetAddonsByBundle(ctx context.Context, bundleID string) ([]*domain.Addon, error)
}

// ReservationProvider exposes existing reservations for the group-exclusivity
// check.
type ReservationProvider interface {
	GetByUnitAndDate(ctx context.Context, unitID string, date time.Time) ([]*domain.Reservation, error)
}

// AvailabilityEvaluator answers one unit/date/window/partySize question.
type AvailabilityEvaluator interface {
	Evaluate(ctx context.Context, req *availability.Request) (*domain.AvailabilityResult, error)
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
