package availability

import (
	"context"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
)

// CatalogProvider is the read-only snapshot of organizations, bundles, units
// and rules the evaluator works against. Implementations signal missing
// entities with the catalog repository's Err*NotFound sentinels.
type CatalogProvider interface {
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	GetBundle(ctx context.Context, id string) (*domain.Bundle, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
	// GetRulesForChain returns every active rule attached to any level of the
	// chain; date/window filtering happens in the engine.
	GetRulesForChain(ctx context.Context, chain domain.TargetChain) ([]*domain.AvailabilityRule, error)
}

// ReservationProvider exposes the reservations competing for capacity.
type ReservationProvider interface {
	// GetByUnitAndDate returns all reservations for the unit on the date,
	// regardless of status; capacity filtering happens in the engine.
	GetByUnitAndDate(ctx context.Context, unitID string, date time.Time) ([]*domain.Reservation, error)
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
