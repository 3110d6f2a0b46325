package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Reservation validation constants
const (
	MinPartySize = 1

	MaxHistoryReasonLength = 500
	MaxCustomerNameLength  = 200
)

// Modification policy defaults.
// A modification accepted closer to the event start than the threshold carries
// an informational surcharge; it never blocks the modification.
const (
	DefaultLateModificationThresholdHours = 6
	DefaultLateModificationSurcharge      = 10.0 // percent
)

// Temporary hold defaults
const (
	DefaultTemporaryHoldMinutes = 30
)

// Advance booking defaults (0 = unlimited)
const (
	DefaultAdvanceBookingDays = 0
	DefaultMinNoticeMinutes   = 0
)

// InactiveStatuses lists statuses that never count against slot capacity.
var InactiveStatuses = []ReservationStatus{
	StatusCancelled,
	StatusExpired,
	StatusRescheduled,
	StatusNoShow,
}

// TerminalStatuses lists statuses that reject any further modification.
var TerminalStatuses = []ReservationStatus{
	StatusCancelled,
	StatusCompleted,
	StatusExpired,
	StatusNoShow,
}
