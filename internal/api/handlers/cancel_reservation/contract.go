package cancel_reservation

import (
	"context"

	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
)

type ReservationService interface {
	ValidateCancellation(ctx context.Context, reservationID string) (*resModels.CancellationAssessment, error)
	Cancel(ctx context.Context, req *resModels.CancellationRequest) (*resModels.CancellationAssessment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
