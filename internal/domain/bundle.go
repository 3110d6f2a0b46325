package domain

import "time"

// Bundle is a sellable grouping of units and addons (a "package" in the
// storefront vocabulary; renamed here because of the Go keyword).
type Bundle struct {
	ID             string
	OrganizationID string
	Name           string
	BasePrice      float64

	UnitIDs  []string
	AddonIDs []string

	// MaxCapacity bounds the total party size across one package booking.
	// Zero means unbounded.
	MaxCapacity int

	// Booking policy flags
	InstantBook      bool
	RequiresApproval bool

	// AdvanceBookingDays limits how far ahead a date may be booked (0 = unlimited).
	AdvanceBookingDays int
	// MinNoticeMinutes is the minimum lead time before the window start (0 = none).
	MinNoticeMinutes int

	// CancellationPolicyText is the human-readable refund policy shown to customers.
	CancellationPolicyText string

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasUnit returns true when the unit belongs to this bundle.
func (b *Bundle) HasUnit(unitID string) bool {
	for _, id := range b.UnitIDs {
		if id == unitID {
			return true
		}
	}
	return false
}

// HasAddon returns true when the addon belongs to this bundle.
func (b *Bundle) HasAddon(addonID string) bool {
	for _, id := range b.AddonIDs {
		if id == addonID {
			return true
		}
	}
	return false
}

// HasAdvanceBookingLimit returns true when dates too far ahead must be rejected.
func (b *Bundle) HasAdvanceBookingLimit() bool {
	return b.AdvanceBookingDays > 0
}
