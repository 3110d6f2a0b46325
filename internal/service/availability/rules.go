package availability

import (
	"sort"
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// ResolveRules evaluates the block/open rules applicable to one request.
//
// Resolution: keep active rules matching any level of the target chain whose
// applicability covers the date and whose window (if any) overlaps the
// candidate window; sort by priority descending, rule ID ascending on equal
// priority; the first rule's type decides. No applicable rule means open.
func ResolveRules(
	rules []*domain.AvailabilityRule,
	chain domain.TargetChain,
	date time.Time,
	window types.TimeWindow,
) domain.RuleResolution {
	applicable := make([]domain.AvailabilityRule, 0)

	for _, rule := range rules {
		if rule == nil || !rule.Active {
			continue
		}
		if !rule.MatchesTarget(chain) {
			continue
		}
		if !rule.AppliesToDate(date) {
			continue
		}
		if !rule.AppliesToWindow(window) {
			continue
		}
		applicable = append(applicable, *rule)
	}

	sort.SliceStable(applicable, func(i, j int) bool {
		if applicable[i].Priority != applicable[j].Priority {
			return applicable[i].Priority > applicable[j].Priority
		}
		return applicable[i].ID < applicable[j].ID
	})

	blocking := make([]domain.AvailabilityRule, 0)
	for _, rule := range applicable {
		if rule.Type == domain.RuleClosed {
			blocking = append(blocking, rule)
		}
	}

	resolution := domain.RuleResolution{
		ApplicableRules: applicable,
		BlockingRules:   blocking,
	}

	if len(applicable) == 0 {
		return resolution
	}

	winner := applicable[0]
	if winner.Type == domain.RuleClosed {
		resolution.IsBlocked = true
		resolution.Reason = winner.Name
		if resolution.Reason == "" {
			resolution.Reason = "blocked by rule " + winner.ID
		}
	}

	return resolution
}
