package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/reservations/models"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/ptr"
)

func TestValidateCancellation_TierResolution(t *testing.T) {
	tests := []struct {
		name            string
		hoursAhead      int
		wantAllowed     bool
		wantPenalty     float64
		requiresPenalty bool
	}{
		{"free window", 50, true, 0, false},
		{"late window", 30, true, 25, true},
		{"very late window", 14, true, 50, true},
		{"window closed", 10, false, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			fx.seedReservation(t, "r1", tt.hoursAhead)

			assessment, err := fx.service.ValidateCancellation(context.Background(), "r1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantAllowed, assessment.Allowed)
			assert.Equal(t, tt.wantPenalty, assessment.PenaltyPercentage)
			assert.Equal(t, tt.requiresPenalty, assessment.RequiresPenalty)
		})
	}
}

func TestCancel_FreeWindow(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	assessment, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		Reason:        "change of plans",
	})

	require.NoError(t, err)
	assert.Equal(t, 0.0, assessment.PenaltyAmount)
	assert.Equal(t, 100.0, assessment.RefundAmount)
	assert.Equal(t, domain.StatusCancelled, fx.repo.reservations["r1"].Status)

	history := fx.repo.history["r1"]
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionCancelled, history[0].Action)
	assert.Equal(t, "customer", history[0].Actor)
}

func TestCancel_InvalidatesAvailabilityCache(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	_, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"unit-1|2025-06-03"}, fx.cache.invalidated)
}

func TestCancel_PenaltyMustBeAccepted(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 30)

	_, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
	})
	assert.ErrorIs(t, err, ErrPenaltyNotAccepted)
	assert.Equal(t, domain.StatusConfirmed, fx.repo.reservations["r1"].Status)

	assessment, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		AcceptPenalty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 25.0, assessment.PenaltyAmount)
	assert.Equal(t, domain.StatusCancelled, fx.repo.reservations["r1"].Status)
}

func TestCancel_WindowClosed(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 10)

	_, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		AcceptPenalty: true,
	})
	assert.ErrorIs(t, err, ErrCancellationNotAllowed)
}

func TestCancel_TerminalReservation(t *testing.T) {
	fx := newFixture(t)
	r := fx.seedReservation(t, "r1", 50)
	r.Status = domain.StatusCancelled

	_, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "r1",
		Actor:         "customer",
	})
	assert.ErrorIs(t, err, ErrReservationTerminal)
}

func TestCancel_NotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.service.Cancel(context.Background(), &models.CancellationRequest{
		ReservationID: "missing",
		Actor:         "customer",
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestValidateModification_LateSurchargeWarning(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 4)

	assessment, err := fx.service.ValidateModification(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.True(t, assessment.Allowed)
	assert.Equal(t, 10.0, assessment.SurchargePercentage)
	assert.Equal(t, 10.0, assessment.SurchargeAmount)
	require.Len(t, assessment.Warnings, 1)
	assert.Equal(t, "LATE_MODIFICATION", assessment.Warnings[0].Code)
}

func TestValidateModification_TimelyHasNoSurcharge(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	assessment, err := fx.service.ValidateModification(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.True(t, assessment.Allowed)
	assert.Zero(t, assessment.SurchargePercentage)
	assert.Empty(t, assessment.Warnings)
}

func TestValidateModification_ExpiredHoldRejected(t *testing.T) {
	fx := newFixture(t)
	r := fx.seedReservation(t, "r1", 50)
	r.Status = domain.StatusPending
	r.IsTemporary = true
	r.TemporaryExpiresAt = ptr.Ptr(testNow.Add(-time.Hour))

	assessment, err := fx.service.ValidateModification(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.False(t, assessment.Allowed)
	require.Len(t, assessment.Issues, 1)
	assert.Equal(t, "HOLD_EXPIRED", assessment.Issues[0].Code)

	_, err = fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})
	assert.ErrorIs(t, err, ErrHoldExpired)
	assert.Equal(t, domain.StatusPending, fx.repo.reservations["r1"].Status)
}

func TestValidateModification_PartySizeAboveUnitCapacity(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	assessment, err := fx.service.ValidateModification(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(10),
	})

	require.NoError(t, err)
	assert.False(t, assessment.Allowed)
	require.Len(t, assessment.Issues, 1)
	assert.Equal(t, "INVALID_PARTY_SIZE", assessment.Issues[0].Code)

	_, err = fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(10),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 2, fx.repo.reservations["r1"].PartySize)
}

func TestModify_PartySizeRepricesReservation(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	resp, err := fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.PartySize)
	assert.Equal(t, 150.0, resp.TotalPrice)
	assert.Equal(t, string(domain.StatusModified), resp.Status)

	// The capacity re-check excludes the reservation being modified
	require.NotNil(t, fx.evaluator.lastReq)
	require.NotNil(t, fx.evaluator.lastReq.ExcludeReservationID)
	assert.Equal(t, "r1", *fx.evaluator.lastReq.ExcludeReservationID)

	history := fx.repo.history["r1"]
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionModified, history[0].Action)
	require.Len(t, history[0].Changes, 1)
	assert.Equal(t, "partySize", history[0].Changes[0].Field)
	assert.Equal(t, "2", history[0].Changes[0].PreviousValue)
	assert.Equal(t, "3", history[0].Changes[0].NewValue)
}

func TestModify_SlotUnavailable(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)
	blocked := domain.Blocked(domain.ReasonFullyBooked, "slot is fully booked")
	fx.evaluator.result = &blocked

	_, err := fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(4),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, domain.StatusConfirmed, fx.repo.reservations["r1"].Status)
}

func TestModify_NoChanges(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	_, err := fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
	})
	assert.ErrorIs(t, err, ErrNoChanges)
}

func TestModify_TerminalReservation(t *testing.T) {
	fx := newFixture(t)
	r := fx.seedReservation(t, "r1", 50)
	r.Status = domain.StatusCompleted

	_, err := fx.service.Modify(context.Background(), &models.ModificationRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewPartySize:  ptr.Ptr(3),
	})
	assert.ErrorIs(t, err, ErrReservationTerminal)
}

func TestReschedule_SpawnsLinkedReplacement(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	newDate := testNow.AddDate(0, 0, 10)
	newDate = time.Date(newDate.Year(), newDate.Month(), newDate.Day(), 0, 0, 0, 0, time.UTC)

	resp, err := fx.service.Reschedule(context.Background(), &models.RescheduleRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewDate:       newDate,
		NewWindow:     window(t, "11:00", "12:30"),
		Reason:        "weather",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.OriginalReservationID)
	assert.Equal(t, "r1", *resp.OriginalReservationID)

	original := fx.repo.reservations["r1"]
	assert.Equal(t, domain.StatusRescheduled, original.Status)
	require.NotNil(t, original.RescheduledToReservationID)
	assert.Equal(t, resp.ID, *original.RescheduledToReservationID)
	assert.False(t, original.CountsAgainstCapacity())

	require.Len(t, fx.repo.history["r1"], 1)
	require.Len(t, fx.repo.history[resp.ID], 1)
	assert.Equal(t, domain.ActionCreated, fx.repo.history[resp.ID][0].Action)
}

func TestReschedule_InvalidatesBothDates(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	newDate := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)
	_, err := fx.service.Reschedule(context.Background(), &models.RescheduleRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewDate:       newDate,
		NewWindow:     window(t, "11:00", "12:30"),
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"unit-1|2025-06-03", "unit-1|2025-06-11"}, fx.cache.invalidated)
}

func TestReschedule_SlotUnavailable(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)
	blocked := domain.Blocked(domain.ReasonException, "closed for maintenance")
	fx.evaluator.result = &blocked

	_, err := fx.service.Reschedule(context.Background(), &models.RescheduleRequest{
		ReservationID: "r1",
		Actor:         "customer",
		NewDate:       testNow.AddDate(0, 0, 10),
		NewWindow:     window(t, "11:00", "12:30"),
	})
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, domain.StatusConfirmed, fx.repo.reservations["r1"].Status)
}

func TestExpireTemporaryHolds(t *testing.T) {
	fx := newFixture(t)

	overdue := fx.seedReservation(t, "r1", 50)
	overdue.IsTemporary = true
	overdue.Status = domain.StatusPending
	overdue.TemporaryExpiresAt = ptr.Ptr(testNow.Add(-5 * time.Minute))

	fresh := fx.seedReservation(t, "r2", 50)
	fresh.IsTemporary = true
	fresh.Status = domain.StatusPending
	fresh.TemporaryExpiresAt = ptr.Ptr(testNow.Add(10 * time.Minute))

	expired, err := fx.service.ExpireTemporaryHolds(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
	assert.Equal(t, domain.StatusExpired, fx.repo.reservations["r1"].Status)
	assert.Equal(t, domain.StatusPending, fx.repo.reservations["r2"].Status)

	history := fx.repo.history["r1"]
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionExpired, history[0].Action)
	assert.Equal(t, "system", history[0].Actor)
}

func TestComplete_RequiresPassedEvent(t *testing.T) {
	fx := newFixture(t)
	fx.seedReservation(t, "r1", 50)

	err := fx.service.Complete(context.Background(), "r1", "staff")
	assert.ErrorIs(t, err, ErrEventNotPassed)

	past := fx.seedReservation(t, "r2", 2)
	past.Date = testNow.AddDate(0, 0, -1)

	err = fx.service.Complete(context.Background(), "r2", "staff")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, fx.repo.reservations["r2"].Status)
}

func TestMarkNoShow(t *testing.T) {
	fx := newFixture(t)
	past := fx.seedReservation(t, "r1", 2)
	past.Date = testNow.AddDate(0, 0, -1)

	err := fx.service.MarkNoShow(context.Background(), "r1", "staff")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusNoShow, fx.repo.reservations["r1"].Status)

	history := fx.repo.history["r1"]
	require.Len(t, history, 1)
	assert.Equal(t, domain.ActionNoShow, history[0].Action)
}
