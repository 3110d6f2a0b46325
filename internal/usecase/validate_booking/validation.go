package validate_booking

import (
	"fmt"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
)

// validateRequest rejects malformed input before any business rule runs.
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.BundleID == "" {
		return fmt.Errorf("%w: bundleId is required", ErrInvalidInput)
	}
	if len(req.Units) == 0 {
		return fmt.Errorf("%w: at least one unit reservation is required", ErrInvalidInput)
	}
	for i, unit := range req.Units {
		if unit.UnitID == "" {
			return fmt.Errorf("%w: units[%d].unitId is required", ErrInvalidInput, i)
		}
		if unit.Date.IsZero() {
			return fmt.Errorf("%w: units[%d].date is required", ErrInvalidInput, i)
		}
		if err := unit.Window.Validate(); err != nil {
			return fmt.Errorf("%w: units[%d]: %v", ErrInvalidInput, i, err)
		}
		if unit.PartySize < domain.MinPartySize {
			return fmt.Errorf("%w: units[%d].partySize must be at least %d", ErrInvalidInput, i, domain.MinPartySize)
		}
	}
	for i, addon := range req.Addons {
		if addon.AddonID == "" {
			return fmt.Errorf("%w: addons[%d].addonId is required", ErrInvalidInput, i)
		}
		if addon.Quantity < 1 {
			return fmt.Errorf("%w: addons[%d].quantity must be at least 1", ErrInvalidInput, i)
		}
	}
	return nil
}

// checkOrganizationOpen verifies the shop has open hours on every requested
// date, independent of whether the windows fit.
func checkOrganizationOpen(result *domain.ValidationResult, org *domain.Organization, units []UnitRequest) {
	if !org.IsActive() {
		result.AddError("ORGANIZATION_INACTIVE", "",
			fmt.Sprintf("organization %s is not taking bookings", org.ID))
	}

	seen := make(map[string]bool)
	for _, unit := range units {
		day := unit.Date.Format(domain.DateFormat)
		if seen[day] {
			continue
		}
		seen[day] = true
		if !org.IsOpenOn(unit.Date) {
			result.AddError("ORGANIZATION_CLOSED", "",
				fmt.Sprintf("organization is closed on %s", day))
		}
	}
}

// checkGroupExclusivity enforces that group reservations own their window: an
// existing live group reservation overlapping the candidate blocks it, and a
// candidate group reservation needs the overlapping window to itself.
func checkGroupExclusivity(result *domain.ValidationResult, field string, unitReq UnitRequest, existing []*domain.Reservation) {
	for _, r := range existing {
		if !r.CountsAgainstCapacity() || !r.Window.Overlaps(unitReq.Window) {
			continue
		}
		if r.IsGroupReservation {
			result.AddError("GROUP_EXCLUSIVE", field,
				fmt.Sprintf("unit %s holds a group reservation overlapping %s", unitReq.UnitID, unitReq.Window))
			return
		}
		if unitReq.IsGroupReservation {
			result.AddError("GROUP_EXCLUSIVE", field,
				fmt.Sprintf("group reservation needs the full window %s, which is partially occupied", unitReq.Window))
			return
		}
	}
}

// validateAddons checks every selection against the bundle's addon set and
// prices the accepted ones. Per-person addons charge per participant across
// the whole package.
func validateAddons(
	result *domain.ValidationResult,
	addons []*domain.Addon,
	selections []AddonRequest,
	acceptedUnits map[string]bool,
	totalPartySize int,
) ([]domain.AddonSelection, float64) {
	byID := make(map[string]*domain.Addon, len(addons))
	for _, addon := range addons {
		byID[addon.ID] = addon
	}

	selected := make(map[string]bool, len(selections))
	pricing := make([]domain.AddonSelection, 0, len(selections))
	total := 0.0

	for i, sel := range selections {
		field := fmt.Sprintf("addons[%d]", i)
		selected[sel.AddonID] = true

		addon, ok := byID[sel.AddonID]
		if !ok {
			result.AddError("ADDON_NOT_IN_BUNDLE", field,
				fmt.Sprintf("addon %s does not belong to this bundle", sel.AddonID))
			continue
		}
		if !addon.Active {
			result.AddError("ADDON_INACTIVE", field,
				fmt.Sprintf("addon %s is not available", addon.ID))
			continue
		}
		if addon.MaxQuantity > 0 && sel.Quantity > addon.MaxQuantity {
			result.AddError("ADDON_QUANTITY_EXCEEDED", field,
				fmt.Sprintf("addon %s quantity %d exceeds maximum %d", addon.ID, sel.Quantity, addon.MaxQuantity))
			continue
		}
		if addon.RequiredUnitID != nil && !acceptedUnits[*addon.RequiredUnitID] {
			result.AddError("ADDON_REQUIRES_UNIT", field,
				fmt.Sprintf("addon %s requires unit %s in the booking", addon.ID, *addon.RequiredUnitID))
			continue
		}

		lineTotal := addon.PriceFor(sel.Quantity, totalPartySize)
		pricing = append(pricing, domain.AddonSelection{
			AddonID:          addon.ID,
			Quantity:         sel.Quantity,
			UnitPrice:        addon.Price,
			TotalPrice:       lineTotal,
			IsGroupSelection: addon.IsPerGroup,
		})
		total += lineTotal
	}

	for _, addon := range addons {
		if addon.Required && addon.Active && !selected[addon.ID] {
			result.AddError("REQUIRED_ADDON_MISSING", "addons",
				fmt.Sprintf("addon %s is required for this bundle", addon.ID))
		}
	}

	return pricing, total
}
