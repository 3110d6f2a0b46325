package get_available_slots

import (
	"context"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// CatalogProvider supplies the unit whose schedule is being listed.
type CatalogProvider interface {
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
}

// AvailabilityEvaluator decides each configured slot.
type AvailabilityEvaluator interface {
	Evaluate(ctx context.Context, req *availability.Request) (*domain.AvailabilityResult, error)
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
