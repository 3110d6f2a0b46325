package get_organization_reservations

import (
	"context"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	resModels "github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
)

type ReservationService interface {
	GetOrganizationReservations(ctx context.Context, filter domain.OrganizationReservationsFilter) (*resModels.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
