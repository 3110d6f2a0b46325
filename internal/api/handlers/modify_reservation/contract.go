package modify_reservation

import (
	"context"

	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
)

type ReservationService interface {
	ValidateModification(ctx context.Context, req *resModels.ModificationRequest) (*resModels.ModificationAssessment, error)
	Modify(ctx context.Context, req *resModels.ModificationRequest) (*resModels.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
