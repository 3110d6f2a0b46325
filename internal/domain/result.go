package domain

// BlockingReason is the closed enumeration of availability denial causes.
type BlockingReason string

const (
	ReasonItemInactive   BlockingReason = "ITEM_INACTIVE"
	ReasonBusinessHours  BlockingReason = "BUSINESS_HOURS"
	ReasonFullyBooked    BlockingReason = "FULLY_BOOKED"
	ReasonException      BlockingReason = "EXCEPTION"
	ReasonAdvanceBooking BlockingReason = "ADVANCE_BOOKING"
)

// AvailabilityResult is the verdict for one (unit, date, window, partySize)
// request. Pure data; the evaluator never mutates state.
type AvailabilityResult struct {
	IsAvailable    bool
	AvailableSpots int
	TotalSpots     int

	// ConflictingReservationIDs lists the reservations occupying the window
	// when the request is denied for capacity.
	ConflictingReservationIDs []string

	// BlockingReason is set iff IsAvailable is false.
	BlockingReason *BlockingReason
	// BlockingDetail carries a human-readable explanation (e.g. the winning
	// rule's name).
	BlockingDetail string
}

// Blocked builds a denied result with the given reason.
func Blocked(reason BlockingReason, detail string) AvailabilityResult {
	r := reason
	return AvailabilityResult{
		IsAvailable:    false,
		BlockingReason: &r,
		BlockingDetail: detail,
	}
}

// RuleResolution is the outcome of priority-resolving the applicable rules.
type RuleResolution struct {
	IsBlocked bool
	Reason    string

	// ApplicableRules are all rules that matched target, date and window,
	// sorted by descending priority (ID ascending on ties).
	ApplicableRules []AvailabilityRule
	// BlockingRules are the CLOSED rules among ApplicableRules.
	BlockingRules []AvailabilityRule
}

// ValidationIssue is one structured error or warning of a validation result.
type ValidationIssue struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// ValidationResult accumulates every problem found instead of stopping at the
// first, so callers can render all of them.
type ValidationResult struct {
	IsValid  bool              `json:"isValid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
}

// NewValidationResult returns a passing result with empty issue lists.
func NewValidationResult() ValidationResult {
	return ValidationResult{
		IsValid:  true,
		Errors:   []ValidationIssue{},
		Warnings: []ValidationIssue{},
	}
}

// AddError appends a blocking issue and marks the result invalid.
func (v *ValidationResult) AddError(code, field, message string) {
	v.IsValid = false
	v.Errors = append(v.Errors, ValidationIssue{Code: code, Field: field, Message: message})
}

// AddWarning appends a non-blocking advisory.
func (v *ValidationResult) AddWarning(code, field, message string) {
	v.Warnings = append(v.Warnings, ValidationIssue{Code: code, Field: field, Message: message})
}

// Merge folds another result's issues into v.
func (v *ValidationResult) Merge(other ValidationResult) {
	if !other.IsValid {
		v.IsValid = false
	}
	v.Errors = append(v.Errors, other.Errors...)
	v.Warnings = append(v.Warnings, other.Warnings...)
}
