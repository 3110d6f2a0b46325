package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/internal/usecase/validate_booking"
)

// PackageValidator dry-runs the booking. Inside the commit transaction its
// reservation reads are row-locked, so the verdict holds until the write.
type PackageValidator interface {
	Execute(ctx context.Context, req *validate_booking.Request) (*validate_booking.Response, error)
}

// CatalogProvider supplies the bundle's booking policy flags.
type CatalogProvider interface {
	GetBundle(ctx context.Context, id string) (*domain.Bundle, error)
}

// ReservationRepository persists the package and its unit reservations.
type ReservationRepository interface {
	CreatePackage(ctx context.Context, pkg *domain.PackageReservation) (*domain.PackageReservation, error)
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error
}

// CacheInvalidator drops memoized availability verdicts after a commit.
type CacheInvalidator interface {
	InvalidateUnitDate(unitID string, date time.Time)
}

// TransactionManager scopes the commit to one serializable transaction.
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (injectable for tests).
type TimeProvider interface {
	Now() time.Time
}

// IDGenerator mints identifiers for the rows created by the commit.
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
