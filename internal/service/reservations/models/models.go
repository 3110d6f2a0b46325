package models

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Request models

// ModificationRequest asks to change one or more mutable fields of a
// reservation. Nil fields stay untouched.
type ModificationRequest struct {
	ReservationID string             `json:"reservationId"`
	Actor         string             `json:"actor"`
	NewDate       *time.Time         `json:"newDate,omitempty"`
	NewWindow     *types.TimeWindow  `json:"newWindow,omitempty"`
	NewPartySize  *int               `json:"newPartySize,omitempty"`
	Reason        string             `json:"reason,omitempty"`
}

// HasChanges reports whether the request modifies anything.
func (r *ModificationRequest) HasChanges() bool {
	return r.NewDate != nil || r.NewWindow != nil || r.NewPartySize != nil
}

// CancellationRequest asks to cancel a reservation. AcceptPenalty must be set
// when the resolved tier carries a penalty.
type CancellationRequest struct {
	ReservationID string `json:"reservationId"`
	Actor         string `json:"actor"`
	Reason        string `json:"reason,omitempty"`
	AcceptPenalty bool   `json:"acceptPenalty"`
}

// RescheduleRequest moves a reservation to a new date/window by spawning a
// linked replacement.
type RescheduleRequest struct {
	ReservationID string           `json:"reservationId"`
	Actor         string           `json:"actor"`
	NewDate       time.Time        `json:"newDate"`
	NewWindow     types.TimeWindow `json:"newWindow"`
	Reason        string           `json:"reason,omitempty"`
}

// Assessment models

// ModificationAssessment is the verdict of a dry-run modification check.
type ModificationAssessment struct {
	Allowed             bool                       `json:"allowed"`
	Issues              []domain.ValidationIssue   `json:"issues,omitempty"`
	Warnings            []domain.ValidationIssue   `json:"warnings,omitempty"`
	SurchargePercentage float64                    `json:"surchargePercentage"`
	SurchargeAmount     float64                    `json:"surchargeAmount"`
	HoursUntilEvent     float64                    `json:"hoursUntilEvent"`
	Availability        *domain.AvailabilityResult `json:"availability,omitempty"`
}

// CancellationAssessment is the verdict of a dry-run cancellation check.
type CancellationAssessment struct {
	Allowed           bool    `json:"allowed"`
	PenaltyPercentage float64 `json:"penaltyPercentage"`
	PenaltyAmount     float64 `json:"penaltyAmount"`
	RefundAmount      float64 `json:"refundAmount"`
	RequiresPenalty   bool    `json:"requiresPenaltyAcceptance"`
	HoursUntilEvent   float64 `json:"hoursUntilEvent"`
	TierReason        string  `json:"tierReason,omitempty"`
}

// Response models

// ReservationResponse is the wire shape of one unit reservation.
type ReservationResponse struct {
	ID                   string  `json:"id"`
	UnitID               string  `json:"unitId"`
	BundleID             string  `json:"bundleId"`
	OrganizationID       string  `json:"organizationId"`
	PackageReservationID string  `json:"packageReservationId,omitempty"`
	Date                 string  `json:"date"`      // "2025-06-10"
	StartTime            string  `json:"startTime"` // "09:00"
	EndTime              string  `json:"endTime"`   // "10:30"
	PartySize            int     `json:"partySize"`
	IsGroupReservation   bool    `json:"isGroupReservation"`
	GroupSize            int     `json:"groupSize,omitempty"`
	Status               string  `json:"status"`
	IsTemporary          bool    `json:"isTemporary"`
	TemporaryExpiresAt   *string `json:"temporaryExpiresAt,omitempty"` // ISO 8601
	UnitPrice            float64 `json:"unitPrice"`
	TotalPrice           float64 `json:"totalPrice"`

	OriginalReservationID      *string `json:"originalReservationId,omitempty"`
	RescheduledToReservationID *string `json:"rescheduledToReservationId,omitempty"`

	History []HistoryEntryResponse `json:"history,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HistoryEntryResponse is one audit-trail line.
type HistoryEntryResponse struct {
	ID        string               `json:"id"`
	Action    string               `json:"action"`
	Timestamp time.Time            `json:"timestamp"`
	Actor     string               `json:"actor,omitempty"`
	Reason    string               `json:"reason,omitempty"`
	Changes   []domain.FieldChange `json:"changes,omitempty"`
}

// ReservationListResponse wraps a reservation listing.
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// Conversion helpers

// FromDomainReservation converts a domain reservation into its wire shape.
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:                         r.ID,
		UnitID:                     r.UnitID,
		BundleID:                   r.BundleID,
		OrganizationID:             r.OrganizationID,
		PackageReservationID:       r.PackageReservationID,
		Date:                       r.Date.Format(domain.DateFormat),
		StartTime:                  r.Window.Start.String(),
		EndTime:                    r.Window.End.String(),
		PartySize:                  r.PartySize,
		IsGroupReservation:         r.IsGroupReservation,
		GroupSize:                  r.GroupSize,
		Status:                     string(r.Status),
		IsTemporary:                r.IsTemporary,
		UnitPrice:                  r.UnitPrice,
		TotalPrice:                 r.TotalPrice,
		OriginalReservationID:      r.OriginalReservationID,
		RescheduledToReservationID: r.RescheduledToReservationID,
		CreatedAt:                  r.CreatedAt,
		UpdatedAt:                  r.UpdatedAt,
	}

	if r.TemporaryExpiresAt != nil {
		expires := r.TemporaryExpiresAt.Format(time.RFC3339)
		resp.TemporaryExpiresAt = &expires
	}

	for _, entry := range r.History {
		resp.History = append(resp.History, HistoryEntryResponse{
			ID:        entry.ID,
			Action:    string(entry.Action),
			Timestamp: entry.Timestamp,
			Actor:     entry.Actor,
			Reason:    entry.Reason,
			Changes:   entry.Changes,
		})
	}

	return resp
}

// FromDomainReservationList converts a slice of reservations.
func FromDomainReservationList(list []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
	}
	for _, r := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}
