package domain

import "time"

// CustomerInfo identifies the booking customer.
type CustomerInfo struct {
	Name  string
	Email string
	Phone string
}

// AddonSelection is one addon line of a package reservation.
type AddonSelection struct {
	AddonID          string
	Quantity         int
	UnitPrice        float64
	TotalPrice       float64
	IsGroupSelection bool
}

// PackageReservation aggregates the unit reservations and addon selections of
// one bundle booking.
type PackageReservation struct {
	ID             string
	BundleID       string
	OrganizationID string

	Customer CustomerInfo

	Reservations    []Reservation
	AddonSelections []AddonSelection

	Status ReservationStatus

	UnitsTotal  float64
	AddonsTotal float64
	TotalPrice  float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalPartySize sums the party sizes of all unit reservations.
func (p *PackageReservation) TotalPartySize() int {
	total := 0
	for _, r := range p.Reservations {
		total += r.PartySize
	}
	return total
}
