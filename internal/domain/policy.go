package domain

// CancellationTier is one penalty threshold of a cancellation policy.
// A tier matches when hours-until-event >= HoursBeforeEvent.
type CancellationTier struct {
	HoursBeforeEvent  int
	PenaltyPercentage float64
	AllowCancellation bool
	Reason            string
}

// CancellationPolicy is the ordered tier list evaluated on cancellation.
// Tiers are scanned in declared order; the first matching tier wins. When no
// tier matches, DefaultTier applies.
type CancellationPolicy struct {
	Tiers       []CancellationTier
	DefaultTier CancellationTier
}

// ResolveTier returns the tier applicable for the given hours-until-event.
func (p CancellationPolicy) ResolveTier(hoursUntilEvent float64) CancellationTier {
	for _, tier := range p.Tiers {
		if hoursUntilEvent >= float64(tier.HoursBeforeEvent) {
			return tier
		}
	}
	return p.DefaultTier
}

// DefaultCancellationPolicy is the standard tier table applied when an
// organization has not configured its own.
func DefaultCancellationPolicy() CancellationPolicy {
	return CancellationPolicy{
		Tiers: []CancellationTier{
			{HoursBeforeEvent: 48, PenaltyPercentage: 0, AllowCancellation: true, Reason: "free cancellation"},
			{HoursBeforeEvent: 24, PenaltyPercentage: 25, AllowCancellation: true, Reason: "late cancellation"},
			{HoursBeforeEvent: 12, PenaltyPercentage: 50, AllowCancellation: true, Reason: "very late cancellation"},
		},
		DefaultTier: CancellationTier{
			HoursBeforeEvent:  0,
			PenaltyPercentage: 100,
			AllowCancellation: false,
			Reason:            "cancellation window closed",
		},
	}
}

// ModificationPolicy governs the late-modification surcharge. The surcharge is
// informational only and never blocks the modification.
type ModificationPolicy struct {
	LateThresholdHours  int
	SurchargePercentage float64
}

// DefaultModificationPolicy returns the standard late-modification terms.
func DefaultModificationPolicy() ModificationPolicy {
	return ModificationPolicy{
		LateThresholdHours:  DefaultLateModificationThresholdHours,
		SurchargePercentage: DefaultLateModificationSurcharge,
	}
}

// SurchargeFor returns the surcharge percentage due when modifying at the
// given distance from the event, or 0 when the modification is timely.
func (p ModificationPolicy) SurchargeFor(hoursUntilEvent float64) float64 {
	if hoursUntilEvent < float64(p.LateThresholdHours) {
		return p.SurchargePercentage
	}
	return 0
}
