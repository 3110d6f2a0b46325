package get_reservation

import (
	"context"

	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
)

type ReservationService interface {
	GetByID(ctx context.Context, id string) (*resModels.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
