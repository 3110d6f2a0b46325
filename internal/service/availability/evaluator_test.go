package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
)

func TestEvaluator_AvailableSlot(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
	assert.Equal(t, 2, result.AvailableSpots)
	assert.Equal(t, 2, result.TotalSpots)
	assert.Nil(t, result.BlockingReason)
}

func TestEvaluator_InactiveUnit(t *testing.T) {
	catalog, reservations := newFixture(t)
	catalog.units["unit-1"].Active = false
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonItemInactive, *result.BlockingReason)
}

func TestEvaluator_ClosedWeekday(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	// Wednesday: no business hours, no slots
	wednesday := testTuesday.AddDate(0, 0, 1)
	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      wednesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonBusinessHours, *result.BlockingReason)
}

func TestEvaluator_NoMatchingSlot(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	// Window inside business hours but not an exact slot match
	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:30", "11:00"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonBusinessHours, *result.BlockingReason)
}

func TestEvaluator_WindowOutsideBusinessHours(t *testing.T) {
	catalog, reservations := newFixture(t)
	// Configure an early slot the organization is not open for
	catalog.units["unit-1"].WeeklySchedule[time.Tuesday] = domain.DaySchedule{
		Available: true,
		Slots:     []domain.Slot{{Window: window(t, "07:00", "08:30"), MaxBookingsPerSlot: 2}},
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "07:00", "08:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonBusinessHours, *result.BlockingReason)
}

func TestEvaluator_RuleBlocked(t *testing.T) {
	catalog, reservations := newFixture(t)
	catalog.rules = []*domain.AvailabilityRule{
		{
			ID:       "maintenance",
			Name:     "maintenance day",
			Type:     domain.RuleClosed,
			Level:    domain.LevelItem,
			TargetID: "unit-1",
			Dates:    []time.Time{testTuesday},
			Priority: 100,
			Active:   true,
		},
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonException, *result.BlockingReason)
	assert.Equal(t, "maintenance day", result.BlockingDetail)
}

func TestEvaluator_OpenRuleOverridesClosed(t *testing.T) {
	catalog, reservations := newFixture(t)
	catalog.rules = []*domain.AvailabilityRule{
		{
			ID: "shop-closed", Type: domain.RuleClosed, Level: domain.LevelShop,
			TargetID: "org-1", Dates: []time.Time{testTuesday}, Priority: 100, Active: true,
		},
		{
			ID: "unit-open", Type: domain.RuleOpen, Level: domain.LevelItem,
			TargetID: "unit-1", Dates: []time.Time{testTuesday}, Priority: 200, Active: true,
		},
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
}

func TestEvaluator_FullyBooked(t *testing.T) {
	catalog, reservations := newFixture(t)
	slotWindow := window(t, "09:00", "10:30")
	reservations.byUnitDate[reservationKey("unit-1", testTuesday)] = []*domain.Reservation{
		confirmedReservation("r1", slotWindow, 1),
		confirmedReservation("r2", slotWindow, 1),
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    slotWindow,
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonFullyBooked, *result.BlockingReason)
	assert.Equal(t, 0, result.AvailableSpots)
	assert.Equal(t, 2, result.TotalSpots)
	assert.ElementsMatch(t, []string{"r1", "r2"}, result.ConflictingReservationIDs)
}

func TestEvaluator_OneSpotLeft(t *testing.T) {
	catalog, reservations := newFixture(t)
	slotWindow := window(t, "09:00", "10:30")
	reservations.byUnitDate[reservationKey("unit-1", testTuesday)] = []*domain.Reservation{
		confirmedReservation("r1", slotWindow, 1),
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    slotWindow,
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.True(t, result.IsAvailable)
	assert.Equal(t, 1, result.AvailableSpots)

	// A second evaluation against the same snapshot sees the same single
	// spot: the pure evaluator does not serialize concurrent bookings.
	again, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    slotWindow,
		PartySize: 1,
	})
	require.NoError(t, err)
	assert.True(t, again.IsAvailable)
	assert.Equal(t, 1, again.AvailableSpots)
}

func TestEvaluator_AdvanceBookingPolicy(t *testing.T) {
	catalog, reservations := newFixture(t)
	catalog.bundles["bundle-1"].AdvanceBookingDays = 5
	evaluator := newTestEvaluator(catalog, reservations)

	// testNow is 2025-06-01; testTuesday (06-10) is 9 days out
	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonAdvanceBooking, *result.BlockingReason)
}

func TestEvaluator_PastDate(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testNow.AddDate(0, 0, -7),
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonAdvanceBooking, *result.BlockingReason)
}

func TestEvaluator_SpecialDateOverride(t *testing.T) {
	catalog, reservations := newFixture(t)
	// The unit is closed on this specific Tuesday despite the weekly schedule
	catalog.units["unit-1"].SpecialDates = map[string]domain.DaySchedule{
		testTuesday.Format(domain.DateFormat): {Available: false},
	}
	evaluator := newTestEvaluator(catalog, reservations)

	result, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	require.NoError(t, err)
	assert.False(t, result.IsAvailable)
	require.NotNil(t, result.BlockingReason)
	assert.Equal(t, domain.ReasonBusinessHours, *result.BlockingReason)
}

func TestEvaluator_UnitNotFound(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	_, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-missing",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})

	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestEvaluator_InvalidRequest(t *testing.T) {
	catalog, reservations := newFixture(t)
	evaluator := newTestEvaluator(catalog, reservations)

	_, err := evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "unit-1",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 0,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = evaluator.Evaluate(context.Background(), &Request{
		UnitID:    "",
		Date:      testTuesday,
		Window:    window(t, "09:00", "10:30"),
		PartySize: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
