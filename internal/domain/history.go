package domain

import "time"

// HistoryAction labels one entry in a reservation's audit trail.
type HistoryAction string

const (
	ActionCreated   HistoryAction = "CREATED"
	ActionConfirmed HistoryAction = "CONFIRMED"
	ActionCancelled HistoryAction = "CANCELLED"
	ActionModified  HistoryAction = "MODIFIED"
	ActionCompleted HistoryAction = "COMPLETED"
	ActionNoShow    HistoryAction = "NO_SHOW"
	ActionExpired   HistoryAction = "EXPIRED"
	ActionDeleted   HistoryAction = "DELETED"
)

// FieldChange records one field-level diff inside a MODIFIED entry.
type FieldChange struct {
	Field         string `json:"field"`
	PreviousValue string `json:"previousValue"`
	NewValue      string `json:"newValue"`
	Description   string `json:"description,omitempty"`
}

// HistoryEntry is one immutable line of a reservation's history.
type HistoryEntry struct {
	ID            string
	ReservationID string
	Action        HistoryAction
	Timestamp     time.Time
	Actor         string
	Reason        string
	Changes       []FieldChange
}
