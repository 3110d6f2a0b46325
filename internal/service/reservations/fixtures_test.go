package reservations

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	reservationRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/reservation"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

var testNow = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

type fakeRepo struct {
	reservations map[string]*domain.Reservation
	history      map[string][]*domain.HistoryEntry
	created      []*domain.Reservation
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reservations: map[string]*domain.Reservation{},
		history:      map[string][]*domain.HistoryEntry{},
	}
}

func (f *fakeRepo) Create(_ context.Context, r *domain.Reservation) (*domain.Reservation, error) {
	stored := *r
	f.reservations[r.ID] = &stored
	f.created = append(f.created, &stored)
	return &stored, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) Update(_ context.Context, r *domain.Reservation) error {
	if _, ok := f.reservations[r.ID]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	stored := *r
	f.reservations[r.ID] = &stored
	return nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status domain.ReservationStatus) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.Status = status
	return nil
}

func (f *fakeRepo) AppendHistory(_ context.Context, entry *domain.HistoryEntry) error {
	f.history[entry.ReservationID] = append(f.history[entry.ReservationID], entry)
	return nil
}

func (f *fakeRepo) GetByOrganizationWithFilter(_ context.Context, filter domain.OrganizationReservationsFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.OrganizationID == filter.OrganizationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListExpiredHolds(_ context.Context, now time.Time) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.HoldExpired(now) && !r.IsTerminal() {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	organizations map[string]*domain.Organization
	units         map[string]*domain.Unit
}

func (f *fakeCatalog) GetOrganization(_ context.Context, id string) (*domain.Organization, error) {
	org, ok := f.organizations[id]
	if !ok {
		return nil, catalogRepo.ErrOrganizationNotFound
	}
	return org, nil
}

func (f *fakeCatalog) GetUnit(_ context.Context, id string) (*domain.Unit, error) {
	unit, ok := f.units[id]
	if !ok {
		return nil, catalogRepo.ErrUnitNotFound
	}
	return unit, nil
}

type fakeEvaluator struct {
	result  *domain.AvailabilityResult
	lastReq *availability.Request
}

func (f *fakeEvaluator) Evaluate(_ context.Context, req *availability.Request) (*domain.AvailabilityResult, error) {
	f.lastReq = req
	if f.result != nil {
		return f.result, nil
	}
	return &domain.AvailabilityResult{IsAvailable: true, AvailableSpots: 1, TotalSpots: 2}, nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateUnitDate(unitID string, date time.Time) {
	f.invalidated = append(f.invalidated, unitID+"|"+date.Format(domain.DateFormat))
}

type nopTxManager struct{}

func (nopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (nopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
func (nopTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type seqIDGenerator struct {
	next int
}

func (g *seqIDGenerator) NewID() string {
	g.next++
	return fmt.Sprintf("id-%d", g.next)
}

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

type fixture struct {
	repo      *fakeRepo
	catalog   *fakeCatalog
	evaluator *fakeEvaluator
	cache     *fakeCache
	service   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalog := &fakeCatalog{
		organizations: map[string]*domain.Organization{
			"org-1": {
				ID:                 "org-1",
				Name:               "Test Shop",
				Status:             domain.OrganizationActive,
				CancellationPolicy: domain.DefaultCancellationPolicy(),
				ModificationPolicy: domain.DefaultModificationPolicy(),
			},
		},
		units: map[string]*domain.Unit{
			"unit-1": {
				ID:             "unit-1",
				BundleID:       "bundle-1",
				OrganizationID: "org-1",
				Capacity:       4,
				Price:          50,
				Active:         true,
			},
		},
	}

	repo := newFakeRepo()
	evaluator := &fakeEvaluator{}
	cache := &fakeCache{}
	service := NewService(
		repo, catalog, evaluator, nopTxManager{},
		&fakeClock{now: testNow}, &seqIDGenerator{}, nopLogger{},
	).WithCacheInvalidator(cache)

	return &fixture{repo: repo, catalog: catalog, evaluator: evaluator, cache: cache, service: service}
}

// seedReservation stores a confirmed reservation starting hoursAhead from
// testNow at the top of the hour.
func (fx *fixture) seedReservation(t *testing.T, id string, hoursAhead int) *domain.Reservation {
	t.Helper()

	start := testNow.Add(time.Duration(hoursAhead) * time.Hour)
	startOfDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	w, err := types.NewTimeWindow(
		types.NewTimeString(start).String(),
		types.NewTimeString(start.Add(90*time.Minute)).String(),
	)
	require.NoError(t, err)

	r := &domain.Reservation{
		ID:             id,
		UnitID:         "unit-1",
		BundleID:       "bundle-1",
		OrganizationID: "org-1",
		Date:           startOfDay,
		Window:         w,
		PartySize:      2,
		Status:         domain.StatusConfirmed,
		UnitPrice:      50,
		TotalPrice:     100,
		CreatedAt:      testNow.Add(-24 * time.Hour),
		UpdatedAt:      testNow.Add(-24 * time.Hour),
	}
	fx.repo.reservations[id] = r
	return r
}
