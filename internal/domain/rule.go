package domain

import (
	"time"

	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// RuleType decides the resolved state when a rule wins.
type RuleType string

const (
	// RuleClosed blocks the matched target for the matched dates/windows.
	RuleClosed RuleType = "CLOSED"
	// RuleOpen explicitly allows the target, overriding lower-priority
	// CLOSED rules. An OPEN rule never grants capacity by itself.
	RuleOpen RuleType = "OPEN"
)

// RuleLevel is the closed set of targets a rule can attach to.
type RuleLevel string

const (
	LevelShop   RuleLevel = "SHOP"   // organization-wide
	LevelBundle RuleLevel = "BUNDLE" // one bundle
	LevelItem   RuleLevel = "ITEM"   // one unit
)

// DateRange is an inclusive [From, To] date span.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ContainsDate reports whether date (compared by calendar day) falls in range.
func (r DateRange) ContainsDate(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(r.From)) && !d.After(truncateToDay(r.To))
}

// AvailabilityRule is a priority-ordered block/open directive.
// Applicability is one of: explicit date list, date range, or weekday set
// (whichever fields are populated; an empty applicability never matches).
type AvailabilityRule struct {
	ID       string
	Name     string
	Type     RuleType
	Level    RuleLevel
	TargetID string

	Weekdays  []time.Weekday
	Dates     []time.Time
	DateRange *DateRange

	// Window restricts the rule to part of the day; nil applies all day.
	Window *types.TimeWindow

	Priority int
	Active   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TargetChain is the unit → bundle → organization resolution path of one request.
type TargetChain struct {
	UnitID         string
	BundleID       string
	OrganizationID string
}

// MatchesTarget reports whether the rule attaches to any level of the chain.
func (r *AvailabilityRule) MatchesTarget(chain TargetChain) bool {
	switch r.Level {
	case LevelShop:
		return r.TargetID == chain.OrganizationID
	case LevelBundle:
		return r.TargetID == chain.BundleID
	case LevelItem:
		return r.TargetID == chain.UnitID
	default:
		return false
	}
}

// AppliesToDate reports whether the rule's applicability matches the date.
func (r *AvailabilityRule) AppliesToDate(date time.Time) bool {
	day := truncateToDay(date)

	for _, d := range r.Dates {
		if truncateToDay(d).Equal(day) {
			return true
		}
	}

	if r.DateRange != nil && r.DateRange.ContainsDate(date) {
		return true
	}

	for _, wd := range r.Weekdays {
		if wd == date.Weekday() {
			return true
		}
	}

	return false
}

// AppliesToWindow reports whether the rule touches the candidate window.
// Rules without a window apply all day.
func (r *AvailabilityRule) AppliesToWindow(window types.TimeWindow) bool {
	if r.Window == nil {
		return true
	}
	return r.Window.Overlaps(window)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
