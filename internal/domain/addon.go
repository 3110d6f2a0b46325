package domain

import "time"

// Addon is an optional, non-scheduled extra sold with a bundle.
type Addon struct {
	ID       string
	BundleID string
	Name     string
	Price    float64

	// IsPerGroup: price is charged once per selection instead of per person.
	IsPerGroup bool

	// RequiredUnitID, when set, restricts the addon to bookings that include
	// that unit.
	RequiredUnitID *string

	// MaxQuantity bounds the requested quantity (0 = unbounded).
	MaxQuantity int

	// Required addons must be part of every booking of the bundle.
	Required bool

	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PriceFor returns the charge for the given quantity and party size.
// Per-group addons charge Price per quantity unit; per-person addons charge
// Price per quantity unit per participant.
func (a *Addon) PriceFor(quantity, partySize int) float64 {
	if a.IsPerGroup {
		return a.Price * float64(quantity)
	}
	return a.Price * float64(quantity) * float64(partySize)
}
