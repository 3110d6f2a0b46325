package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// 2025-06-10 is a Tuesday.
var (
	testTuesday = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	testNow     = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
)

type fakeCatalog struct {
	organizations map[string]*domain.Organization
	bundles       map[string]*domain.Bundle
	units         map[string]*domain.Unit
	rules         []*domain.AvailabilityRule
}

func (f *fakeCatalog) GetOrganization(_ context.Context, id string) (*domain.Organization, error) {
	org, ok := f.organizations[id]
	if !ok {
		return nil, catalogRepo.ErrOrganizationNotFound
	}
	return org, nil
}

func (f *fakeCatalog) GetBundle(_ context.Context, id string) (*domain.Bundle, error) {
	bundle, ok := f.bundles[id]
	if !ok {
		return nil, catalogRepo.ErrBundleNotFound
	}
	return bundle, nil
}

func (f *fakeCatalog) GetUnit(_ context.Context, id string) (*domain.Unit, error) {
	unit, ok := f.units[id]
	if !ok {
		return nil, catalogRepo.ErrUnitNotFound
	}
	return unit, nil
}

func (f *fakeCatalog) GetRulesForChain(_ context.Context, chain domain.TargetChain) ([]*domain.AvailabilityRule, error) {
	matched := make([]*domain.AvailabilityRule, 0)
	for _, rule := range f.rules {
		if rule.MatchesTarget(chain) {
			matched = append(matched, rule)
		}
	}
	return matched, nil
}

type fakeReservations struct {
	byUnitDate map[string][]*domain.Reservation
}

func reservationKey(unitID string, date time.Time) string {
	return unitID + "|" + date.Format(domain.DateFormat)
}

func (f *fakeReservations) GetByUnitAndDate(_ context.Context, unitID string, date time.Time) ([]*domain.Reservation, error) {
	return f.byUnitDate[reservationKey(unitID, date)], nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func window(t *testing.T, start, end string) types.TimeWindow {
	t.Helper()
	w, err := types.NewTimeWindow(start, end)
	require.NoError(t, err)
	return w
}

// newFixture builds a snapshot with one active organization (Tue 09:00-18:00),
// one bundle and one unit with a Tuesday slot 09:00-10:30 of capacity 2.
func newFixture(t *testing.T) (*fakeCatalog, *fakeReservations) {
	t.Helper()

	org := &domain.Organization{
		ID:     "org-1",
		Name:   "Test Shop",
		Status: domain.OrganizationActive,
		WeeklyHours: map[time.Weekday][]types.TimeWindow{
			time.Tuesday: {window(t, "09:00", "18:00")},
		},
		CancellationPolicy: domain.DefaultCancellationPolicy(),
		ModificationPolicy: domain.DefaultModificationPolicy(),
	}

	bundle := &domain.Bundle{
		ID:             "bundle-1",
		OrganizationID: "org-1",
		Name:           "Test Bundle",
		UnitIDs:        []string{"unit-1"},
		Active:         true,
	}

	unit := &domain.Unit{
		ID:              "unit-1",
		BundleID:        "bundle-1",
		OrganizationID:  "org-1",
		Name:            "Test Unit",
		Capacity:        2,
		DurationMinutes: 90,
		Price:           50,
		Active:          true,
		WeeklySchedule: map[time.Weekday]domain.DaySchedule{
			time.Tuesday: {
				Available: true,
				Slots: []domain.Slot{
					{Window: window(t, "09:00", "10:30"), MaxBookingsPerSlot: 2},
					{Window: window(t, "11:00", "12:30"), MaxBookingsPerSlot: 2},
				},
			},
		},
	}

	catalog := &fakeCatalog{
		organizations: map[string]*domain.Organization{org.ID: org},
		bundles:       map[string]*domain.Bundle{bundle.ID: bundle},
		units:         map[string]*domain.Unit{unit.ID: unit},
	}

	return catalog, &fakeReservations{byUnitDate: map[string][]*domain.Reservation{}}
}

func newTestEvaluator(catalog *fakeCatalog, reservations *fakeReservations) *Evaluator {
	return NewEvaluator(catalog, reservations, nopLogger{}).
		WithTimeProvider(&fakeClock{now: testNow})
}

func confirmedReservation(id string, w types.TimeWindow, partySize int) *domain.Reservation {
	return &domain.Reservation{
		ID:        id,
		UnitID:    "unit-1",
		BundleID:  "bundle-1",
		Date:      testTuesday,
		Window:    w,
		PartySize: partySize,
		Status:    domain.StatusConfirmed,
	}
}
