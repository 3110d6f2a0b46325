package create_booking

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// 2025-06-07 is a Saturday.
var (
	testSaturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)
	testNow      = time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
)

// fakeValidator prices each unit at 50 per person and accepts the booking
// unless invalid is set.
type fakeValidator struct {
	invalid bool
	err     error
	lastReq *validate_booking.Request
}

func (f *fakeValidator) Execute(_ context.Context, req *validate_booking.Request) (*validate_booking.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}

	resp := &validate_booking.Response{
		Result:         domain.NewValidationResult(),
		TotalPartySize: req.TotalPartySize(),
	}
	if f.invalid {
		resp.Result.AddError("UNIT_UNAVAILABLE", "units[0]", "unit unit-1 is not available")
		return resp, nil
	}

	for _, unit := range req.Units {
		price := 50.0 * float64(unit.PartySize)
		resp.UnitOutcomes = append(resp.UnitOutcomes, validate_booking.UnitOutcome{
			UnitID:    unit.UnitID,
			Date:      unit.Date,
			Window:    unit.Window,
			PartySize: unit.PartySize,
			Availability: &domain.AvailabilityResult{
				IsAvailable: true, AvailableSpots: 2, TotalSpots: 4,
			},
			UnitPrice: 50,
			Price:     price,
		})
		resp.UnitsTotal += price
	}
	resp.TotalPrice = resp.UnitsTotal
	return resp, nil
}

type fakeCatalog struct {
	bundles map[string]*domain.Bundle
}

func (f *fakeCatalog) GetBundle(_ context.Context, id string) (*domain.Bundle, error) {
	bundle, ok := f.bundles[id]
	if !ok {
		return nil, catalogRepo.ErrBundleNotFound
	}
	return bundle, nil
}

type fakeRepo struct {
	packages     map[string]*domain.PackageReservation
	reservations map[string]*domain.Reservation
	history      []*domain.HistoryEntry
	createdAt    time.Time
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		packages:     map[string]*domain.PackageReservation{},
		reservations: map[string]*domain.Reservation{},
		createdAt:    testNow,
	}
}

func (f *fakeRepo) CreatePackage(_ context.Context, pkg *domain.PackageReservation) (*domain.PackageReservation, error) {
	stored := *pkg
	stored.CreatedAt = f.createdAt
	stored.UpdatedAt = f.createdAt
	f.packages[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeRepo) Create(_ context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	stored := *reservation
	stored.CreatedAt = f.createdAt
	stored.UpdatedAt = f.createdAt
	f.reservations[stored.ID] = &stored
	return &stored, nil
}

func (f *fakeRepo) AppendHistory(_ context.Context, entry *domain.HistoryEntry) error {
	f.history = append(f.history, entry)
	return nil
}

type fakeCache struct {
	invalidated []string
}

func (f *fakeCache) InvalidateUnitDate(unitID string, date time.Time) {
	f.invalidated = append(f.invalidated, unitID+"|"+date.Format(domain.DateFormat))
}

type nopTxManager struct{}

func (nopTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
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
	validator *fakeValidator
	catalog   *fakeCatalog
	repo      *fakeRepo
	cache     *fakeCache
	uc        *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		validator: &fakeValidator{},
		catalog: &fakeCatalog{bundles: map[string]*domain.Bundle{
			"bundle-1": {
				ID:             "bundle-1",
				OrganizationID: "org-1",
				Name:           "Test Bundle",
				UnitIDs:        []string{"unit-1", "unit-2"},
				InstantBook:    true,
				Active:         true,
			},
		}},
		repo:  newFakeRepo(),
		cache: &fakeCache{},
	}
	f.uc = NewUseCase(f.validator, f.catalog, f.repo, f.cache, nopTxManager{}, &seqIDGenerator{}, nopLogger{}).
		WithTimeProvider(&fakeClock{now: testNow})
	return f
}

func twoUnitRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		BundleID: "bundle-1",
		Customer: domain.CustomerInfo{Name: "Ana", Email: "ana@example.com"},
		Units: []validate_booking.UnitRequest{
			{UnitID: "unit-1", Date: testSaturday, Window: window(t, "10:00", "11:30"), PartySize: 2},
			{UnitID: "unit-2", Date: testSaturday, Window: window(t, "12:00", "13:30"), PartySize: 3},
		},
	}
}
