package evaluate_availability

import (
	"context"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// AvailabilityEvaluator answers one (unit, date, window, partySize) question.
type AvailabilityEvaluator interface {
	Evaluate(ctx context.Context, req *availability.Request) (*domain.AvailabilityResult, error)
}

// ResultCache memoizes verdicts per request signature. Entries are dropped by
// TTL and by unit/date invalidation on booking commits.
type ResultCache interface {
	Get(key string) (domain.AvailabilityResult, bool)
	Put(unitID string, date time.Time, key string, result domain.AvailabilityResult)
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
