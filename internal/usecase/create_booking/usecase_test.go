package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

func TestCreateBooking_InstantBookConfirmsImmediately(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), twoUnitRequest(t))

	require.NoError(t, err)
	assert.True(t, resp.Committed)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Nil(t, resp.HoldExpiresAt)
	assert.Equal(t, 250.0, resp.TotalPrice) // 2x50 + 3x50

	require.Len(t, resp.Reservations, 2)
	assert.Len(t, f.repo.packages, 1)
	assert.Len(t, f.repo.reservations, 2)

	for _, r := range f.repo.reservations {
		assert.Equal(t, domain.StatusConfirmed, r.Status)
		assert.False(t, r.IsTemporary)
		assert.Nil(t, r.TemporaryExpiresAt)
		assert.Equal(t, resp.ID, r.PackageReservationID)
	}

	// One creation history entry per reservation.
	require.Len(t, f.repo.history, 2)
	for _, entry := range f.repo.history {
		assert.Equal(t, domain.ActionCreated, entry.Action)
		assert.Equal(t, "ana@example.com", entry.Actor)
	}
}

func TestCreateBooking_ApprovalBundleHoldsTemporarily(t *testing.T) {
	f := newFixture(t)
	f.catalog.bundles["bundle-1"].InstantBook = false

	resp, err := f.uc.Execute(context.Background(), twoUnitRequest(t))

	require.NoError(t, err)
	assert.True(t, resp.Committed)
	assert.Equal(t, string(domain.StatusPending), resp.Status)

	require.NotNil(t, resp.HoldExpiresAt)
	assert.Equal(t, testNow.Add(domain.DefaultTemporaryHoldMinutes*time.Minute), *resp.HoldExpiresAt)

	for _, r := range f.repo.reservations {
		assert.Equal(t, domain.StatusPending, r.Status)
		assert.True(t, r.IsTemporary)
		require.NotNil(t, r.TemporaryExpiresAt)
		assert.Equal(t, *resp.HoldExpiresAt, *r.TemporaryExpiresAt)
	}
}

func TestCreateBooking_RejectedPersistsNothing(t *testing.T) {
	f := newFixture(t)
	f.validator.invalid = true

	resp, err := f.uc.Execute(context.Background(), twoUnitRequest(t))

	require.NoError(t, err)
	assert.False(t, resp.Committed)
	assert.False(t, resp.Validation.IsValid)
	assert.Empty(t, resp.Reservations)

	assert.Empty(t, f.repo.packages)
	assert.Empty(t, f.repo.reservations)
	assert.Empty(t, f.repo.history)
	assert.Empty(t, f.cache.invalidated)
}

func TestCreateBooking_CommitInvalidatesCachePerUnitDate(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), twoUnitRequest(t))

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"unit-1|2025-06-07",
		"unit-2|2025-06-07",
	}, f.cache.invalidated)
}

func TestCreateBooking_GroupReservationRecordsGroupSize(t *testing.T) {
	f := newFixture(t)
	req := twoUnitRequest(t)
	req.Units[0].IsGroupReservation = true

	resp, err := f.uc.Execute(context.Background(), req)

	require.NoError(t, err)
	require.True(t, resp.Committed)

	var group *domain.Reservation
	for _, r := range f.repo.reservations {
		if r.UnitID == "unit-1" {
			group = r
		}
	}
	require.NotNil(t, group)
	assert.True(t, group.IsGroupReservation)
	assert.Equal(t, 2, group.GroupSize)
}

func TestCreateBooking_BundleNotFound(t *testing.T) {
	f := newFixture(t)
	f.validator.err = validate_booking.ErrBundleNotFound

	req := twoUnitRequest(t)
	req.BundleID = "bundle-missing"

	resp, err := f.uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrBundleNotFound)
	assert.Nil(t, resp)
}
