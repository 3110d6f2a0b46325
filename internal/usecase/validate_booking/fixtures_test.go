package validate_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	catalogRepo "github.com/MaximoMartin/celebrae-booking-engine/internal/infra/storage/catalog"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// 2025-06-07 is a Saturday.
var testSaturday = time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	organizations map[string]*domain.Organization
	bundles       map[string]*domain.Bundle
	units         map[string]*domain.Unit
	addons        map[string][]*domain.Addon
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

func (f *fakeCatalog) GetAddonsByBundle(_ context.Context, bundleID string) ([]*domain.Addon, error) {
	return f.addons[bundleID], nil
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

// fakeEvaluator answers per unit; units without an entry are available.
type fakeEvaluator struct {
	byUnit map[string]domain.AvailabilityResult
}

func (f *fakeEvaluator) Evaluate(_ context.Context, req *availability.Request) (*domain.AvailabilityResult, error) {
	if result, ok := f.byUnit[req.UnitID]; ok {
		return &result, nil
	}
	return &domain.AvailabilityResult{IsAvailable: true, AvailableSpots: 4, TotalSpots: 4}, nil
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
	catalog      *fakeCatalog
	reservations *fakeReservations
	evaluator    *fakeEvaluator
	uc           *UseCase
}

// newFixture builds a bookable bundle with two units and two addons:
// unit-1 charges 50 per person, unit-2 charges 200 per group; addon-pp charges
// 10 per person, addon-pg charges 30 per group (max 2).
func newFixture(t *testing.T) *fixture {
	t.Helper()

	org := &domain.Organization{
		ID:     "org-1",
		Name:   "Test Shop",
		Status: domain.OrganizationActive,
		WeeklyHours: map[time.Weekday][]types.TimeWindow{
			time.Saturday: {window(t, "09:00", "20:00")},
		},
		CancellationPolicy: domain.DefaultCancellationPolicy(),
		ModificationPolicy: domain.DefaultModificationPolicy(),
	}

	bundle := &domain.Bundle{
		ID:             "bundle-1",
		OrganizationID: "org-1",
		Name:           "Test Bundle",
		UnitIDs:        []string{"unit-1", "unit-2"},
		AddonIDs:       []string{"addon-pp", "addon-pg"},
		MaxCapacity:    8,
		Active:         true,
	}

	unit1 := &domain.Unit{
		ID:             "unit-1",
		BundleID:       "bundle-1",
		OrganizationID: "org-1",
		Name:           "Per-Person Unit",
		Capacity:       4,
		Price:          50,
		Active:         true,
	}
	unit2 := &domain.Unit{
		ID:             "unit-2",
		BundleID:       "bundle-1",
		OrganizationID: "org-1",
		Name:           "Per-Group Unit",
		Capacity:       10,
		Price:          200,
		IsPerGroup:     true,
		Active:         true,
	}

	addonPP := &domain.Addon{
		ID:       "addon-pp",
		BundleID: "bundle-1",
		Name:     "Per-Person Addon",
		Price:    10,
		Active:   true,
	}
	addonPG := &domain.Addon{
		ID:          "addon-pg",
		BundleID:    "bundle-1",
		Name:        "Per-Group Addon",
		Price:       30,
		IsPerGroup:  true,
		MaxQuantity: 2,
		Active:      true,
	}

	f := &fixture{
		catalog: &fakeCatalog{
			organizations: map[string]*domain.Organization{org.ID: org},
			bundles:       map[string]*domain.Bundle{bundle.ID: bundle},
			units:         map[string]*domain.Unit{unit1.ID: unit1, unit2.ID: unit2},
			addons:        map[string][]*domain.Addon{bundle.ID: {addonPP, addonPG}},
		},
		reservations: &fakeReservations{byUnitDate: map[string][]*domain.Reservation{}},
		evaluator:    &fakeEvaluator{byUnit: map[string]domain.AvailabilityResult{}},
	}
	f.uc = NewUseCase(f.catalog, f.reservations, f.evaluator, nopLogger{})
	return f
}

// twoUnitRequest books both units for two people each on the fixture Saturday.
func twoUnitRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		BundleID: "bundle-1",
		Customer: domain.CustomerInfo{Name: "Ana", Email: "ana@example.com"},
		Units: []UnitRequest{
			{UnitID: "unit-1", Date: testSaturday, Window: window(t, "10:00", "11:30"), PartySize: 2},
			{UnitID: "unit-2", Date: testSaturday, Window: window(t, "12:00", "13:30"), PartySize: 2},
		},
	}
}

func issueCodes(issues []domain.ValidationIssue) []string {
	codes := make([]string, 0, len(issues))
	for _, issue := range issues {
		codes = append(codes, issue.Code)
	}
	return codes
}
