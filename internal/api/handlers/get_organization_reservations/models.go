package get_organization_reservations

import (
	"fmt"
	"strconv"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
)

// ToFilter parses the optional query parameters into the listing filter.
func ToFilter(organizationID, unitID, statusStr, startDateStr, endDateStr, includeInactiveStr string) (domain.OrganizationReservationsFilter, error) {
	filter := domain.OrganizationReservationsFilter{OrganizationID: organizationID}

	if unitID != "" {
		filter.UnitID = &unitID
	}

	if statusStr != "" {
		status := domain.ReservationStatus(statusStr)
		switch status {
		case domain.StatusPending, domain.StatusConfirmed, domain.StatusModified,
			domain.StatusCancelled, domain.StatusRescheduled, domain.StatusCompleted,
			domain.StatusNoShow, domain.StatusExpired:
			filter.Status = &status
		default:
			return filter, fmt.Errorf("unknown status %q", statusStr)
		}
	}

	if startDateStr != "" {
		startDate, err := time.Parse(domain.DateFormat, startDateStr)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &startDate
	}

	if endDateStr != "" {
		endDate, err := time.Parse(domain.DateFormat, endDateStr)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &endDate
	}

	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return filter, err
		}
		filter.IncludeInactive = includeInactive
	}

	return filter, nil
}
