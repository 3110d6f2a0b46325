package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

func mustWindow(t *testing.T, start, end string) types.TimeWindow {
	t.Helper()
	w, err := types.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

func TestReservation_IsTerminal(t *testing.T) {
	terminal := []ReservationStatus{StatusCancelled, StatusCompleted, StatusExpired, StatusNoShow}
	for _, status := range terminal {
		assert.True(t, (&Reservation{Status: status}).IsTerminal(), string(status))
	}

	open := []ReservationStatus{StatusPending, StatusConfirmed, StatusModified, StatusRescheduled}
	for _, status := range open {
		assert.False(t, (&Reservation{Status: status}).IsTerminal(), string(status))
	}
}

func TestReservation_CountsAgainstCapacity(t *testing.T) {
	counting := []ReservationStatus{StatusPending, StatusConfirmed, StatusModified, StatusCompleted}
	for _, status := range counting {
		assert.True(t, (&Reservation{Status: status}).CountsAgainstCapacity(), string(status))
	}

	released := []ReservationStatus{StatusCancelled, StatusExpired, StatusRescheduled, StatusNoShow}
	for _, status := range released {
		assert.False(t, (&Reservation{Status: status}).CountsAgainstCapacity(), string(status))
	}
}

func TestReservation_HoldExpired(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(-time.Minute)

	expired := &Reservation{IsTemporary: true, TemporaryExpiresAt: &deadline}
	assert.True(t, expired.HoldExpired(now))

	future := now.Add(time.Hour)
	alive := &Reservation{IsTemporary: true, TemporaryExpiresAt: &future}
	assert.False(t, alive.HoldExpired(now))

	permanent := &Reservation{IsTemporary: false, TemporaryExpiresAt: &deadline}
	assert.False(t, permanent.HoldExpired(now))
}

func TestReservation_StartsAtAndHoursUntil(t *testing.T) {
	res := &Reservation{
		Date:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Window: mustWindow(t, "09:00", "10:30"),
	}

	start := res.StartsAt()
	assert.Equal(t, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), start)

	now := time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)
	assert.InDelta(t, 24.0, res.HoursUntilStart(now), 0.001)
	assert.False(t, res.EventPassed(now))
	assert.True(t, res.EventPassed(start.Add(time.Minute)))
}

func TestUnit_ScheduleFor(t *testing.T) {
	tuesday := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	unit := &Unit{
		WeeklySchedule: map[time.Weekday]DaySchedule{
			time.Tuesday: {
				Available: true,
				Slots:     []Slot{{Window: mustWindow(t, "09:00", "10:30"), MaxBookingsPerSlot: 2}},
			},
		},
		SpecialDates: map[string]DaySchedule{
			"2025-06-17": {Available: false},
		},
	}

	day := unit.ScheduleFor(tuesday)
	assert.True(t, day.Available)
	assert.Len(t, day.Slots, 1)

	// Special-date override beats the weekly schedule for the same weekday
	overridden := unit.ScheduleFor(tuesday.AddDate(0, 0, 7))
	assert.False(t, overridden.Available)

	// Missing weekday entry means unavailable
	monday := unit.ScheduleFor(tuesday.AddDate(0, 0, -1))
	assert.False(t, monday.Available)
}

func TestUnitAndAddon_Pricing(t *testing.T) {
	perPerson := &Unit{Price: 10, IsPerGroup: false}
	assert.Equal(t, 40.0, perPerson.PriceFor(4))

	perGroup := &Unit{Price: 100, IsPerGroup: true}
	assert.Equal(t, 100.0, perGroup.PriceFor(4))

	addonPerGroup := &Addon{Price: 25, IsPerGroup: true}
	assert.Equal(t, 50.0, addonPerGroup.PriceFor(2, 4))

	addonPerPerson := &Addon{Price: 5, IsPerGroup: false}
	assert.Equal(t, 40.0, addonPerPerson.PriceFor(2, 4))
}
