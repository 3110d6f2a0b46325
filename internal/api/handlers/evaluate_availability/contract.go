package evaluate_availability

import (
	"context"

	evaluateAvailability "github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/evaluate_availability"
)

type EvaluateAvailabilityUseCase interface {
	Execute(ctx context.Context, req *evaluateAvailability.Request) (*evaluateAvailability.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
