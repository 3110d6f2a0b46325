package reservations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/service/availability"
)

// ReservationRepository is the persistence surface for unit reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	GetByID(ctx context.Context, id string) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error
	AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error
	GetByOrganizationWithFilter(ctx context.Context, filter domain.OrganizationReservationsFilter) ([]*domain.Reservation, error)
	ListExpiredHolds(ctx context.Context, now time.Time) ([]*domain.Reservation, error)
}

// CatalogProvider supplies the organization policies the lifecycle rules read.
type CatalogProvider interface {
	GetOrganization(ctx context.Context, id string) (*domain.Organization, error)
	GetUnit(ctx context.Context, id string) (*domain.Unit, error)
}

// AvailabilityEvaluator re-checks a slot when a reservation moves.
type AvailabilityEvaluator interface {
	Evaluate(ctx context.Context, req *availability.Request) (*domain.AvailabilityResult, error)
}

// CacheInvalidator drops memoized availability verdicts for a unit/date after
// a reservation on it changes.
type CacheInvalidator interface {
	InvalidateUnitDate(unitID string, date time.Time)
}

// TransactionManager scopes multi-write operations to one transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator mints identifiers for new reservations and history entries.
type IDGenerator interface {
	NewID() string
}

// Logger is the logging surface this package needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production clock.
type RealTimeProvider struct{}

// Now returns the current time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// UUIDGenerator mints random UUIDv4 identifiers.
type UUIDGenerator struct{}

// NewID returns a fresh UUID string.
func (g *UUIDGenerator) NewID() string {
	return uuid.NewString()
}
