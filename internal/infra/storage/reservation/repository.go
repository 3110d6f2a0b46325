package reservation

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/dbmetrics"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/psqlbuilder"
)

// Repository persists unit reservations, their history and the package
// reservations grouping them.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the reservation repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var reservationColumns = []string{
	"id",
	"unit_id",
	"bundle_id",
	"organization_id",
	"package_reservation_id",
	"reservation_date",
	"start_time",
	"end_time",
	"party_size",
	"is_group_reservation",
	"group_size",
	"status",
	"is_temporary",
	"temporary_expires_at",
	"unit_price",
	"total_price",
	"original_reservation_id",
	"rescheduled_to_reservation_id",
	"created_at",
	"updated_at",
}

// Create inserts a reservation. When the context carries an open transaction
// the insert joins it, which is how booking commits stay atomic with their
// capacity checks.
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(reservationColumns[:len(reservationColumns)-2]...).
		Values(
			reservation.ID,
			reservation.UnitID,
			reservation.BundleID,
			reservation.OrganizationID,
			nullString(reservation.PackageReservationID),
			reservation.Date,
			reservation.Window.Start,
			reservation.Window.End,
			reservation.PartySize,
			reservation.IsGroupReservation,
			reservation.GroupSize,
			reservation.Status,
			reservation.IsTemporary,
			reservation.TemporaryExpiresAt,
			reservation.UnitPrice,
			reservation.TotalPrice,
			reservation.OriginalReservationID,
			reservation.RescheduledToReservationID,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID fetches one reservation with its history.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	// Inside a transaction the row is locked for the lifecycle write that follows.
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := r.scanReservationRow(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}

	history, err := r.getHistory(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	reservation.History = history

	return reservation, nil
}

// GetByUnitAndDate returns every reservation of a unit on a date, regardless
// of status. Inside a transaction the rows are locked so a concurrent commit
// cannot slip past the capacity check.
func (r *Repository) GetByUnitAndDate(ctx context.Context, unitID string, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"unit_id": unitID}).
		Where(squirrel.Eq{"reservation_date": date}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUnitAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByOrganizationWithFilter lists a shop's reservations. Without an explicit
// status filter, inactive statuses are excluded unless IncludeInactive is set.
func (r *Repository) GetByOrganizationWithFilter(ctx context.Context, filter domain.OrganizationReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"organization_id": filter.OrganizationID})

	if filter.UnitID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"unit_id": *filter.UnitID})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"reservation_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("reservation_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrganizationWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListExpiredHolds returns temporary holds whose deadline has passed and that
// are still in a live status.
func (r *Repository) ListExpiredHolds(ctx context.Context, now time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	terminal := make([]string, len(domain.TerminalStatuses))
	for i, s := range domain.TerminalStatuses {
		terminal[i] = string(s)
	}

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"is_temporary": true}).
		Where(squirrel.Lt{"temporary_expires_at": now}).
		Where(squirrel.NotEq{"status": terminal}).
		OrderBy("temporary_expires_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredHolds - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListExpiredHolds - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// Update rewrites the mutable fields of a reservation.
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reservation_date", reservation.Date).
		Set("start_time", reservation.Window.Start).
		Set("end_time", reservation.Window.End).
		Set("party_size", reservation.PartySize).
		Set("status", reservation.Status).
		Set("is_temporary", reservation.IsTemporary).
		Set("temporary_expires_at", reservation.TemporaryExpiresAt).
		Set("unit_price", reservation.UnitPrice).
		Set("total_price", reservation.TotalPrice).
		Set("rescheduled_to_reservation_id", reservation.RescheduledToReservationID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// UpdateStatus moves a reservation to a new status.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

// AppendHistory adds one audit-trail entry.
func (r *Repository) AppendHistory(ctx context.Context, entry *domain.HistoryEntry) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("%w: AppendHistory - marshal changes: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("reservation_history").
		Columns("id", "reservation_id", "action", "actor", "reason", "changes", "created_at").
		Values(entry.ID, entry.ReservationID, entry.Action, entry.Actor, entry.Reason, changes, entry.Timestamp).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AppendHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: AppendHistory - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// CreatePackage inserts a package reservation header. The unit reservations
// belonging to it are inserted separately via Create.
func (r *Repository) CreatePackage(ctx context.Context, pkg *domain.PackageReservation) (*domain.PackageReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	customer, err := json.Marshal(pkg.Customer)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - marshal customer: %v", ErrBuildQuery, err)
	}
	addons, err := json.Marshal(pkg.AddonSelections)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - marshal addon selections: %v", ErrBuildQuery, err)
	}

	query, args, err := psqlbuilder.Insert("package_reservations").
		Columns(
			"id",
			"bundle_id",
			"organization_id",
			"customer",
			"addon_selections",
			"status",
			"units_total",
			"addons_total",
			"total_price",
		).
		Values(
			pkg.ID,
			pkg.BundleID,
			pkg.OrganizationID,
			customer,
			addons,
			pkg.Status,
			pkg.UnitsTotal,
			pkg.AddonsTotal,
			pkg.TotalPrice,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePackage - execute insert: %v", ErrExecQuery, err)
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	return pkg, nil
}

// GetPackageByID fetches a package reservation with its unit reservations.
func (r *Repository) GetPackageByID(ctx context.Context, id string) (*domain.PackageReservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"bundle_id",
		"organization_id",
		"customer",
		"addon_selections",
		"status",
		"units_total",
		"addons_total",
		"total_price",
		"created_at",
		"updated_at",
	).
		From("package_reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByID - build select query: %v", ErrBuildQuery, err)
	}

	var pkg domain.PackageReservation
	var customer, addons []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&pkg.ID,
		&pkg.BundleID,
		&pkg.OrganizationID,
		&customer,
		&addons,
		&pkg.Status,
		&pkg.UnitsTotal,
		&pkg.AddonsTotal,
		&pkg.TotalPrice,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPackageByID - scan package: %v", ErrScanRow, err)
	}

	if err := json.Unmarshal(customer, &pkg.Customer); err != nil {
		return nil, fmt.Errorf("%w: GetPackageByID - decode customer: %v", ErrDecodePayload, err)
	}
	if len(addons) > 0 {
		if err := json.Unmarshal(addons, &pkg.AddonSelections); err != nil {
			return nil, fmt.Errorf("%w: GetPackageByID - decode addon selections: %v", ErrDecodePayload, err)
		}
	}

	pkg.CreatedAt = createdAt.Time
	pkg.UpdatedAt = updatedAt.Time

	members, err := r.getPackageMembers(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	pkg.Reservations = members

	return &pkg, nil
}

// Row scanning helpers

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanReservationRow(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var packageID, originalID, rescheduledTo sql.NullString
	var expiresAt sql.NullTime
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.UnitID,
		&reservation.BundleID,
		&reservation.OrganizationID,
		&packageID,
		&reservation.Date,
		&reservation.Window.Start,
		&reservation.Window.End,
		&reservation.PartySize,
		&reservation.IsGroupReservation,
		&reservation.GroupSize,
		&reservation.Status,
		&reservation.IsTemporary,
		&expiresAt,
		&reservation.UnitPrice,
		&reservation.TotalPrice,
		&originalID,
		&rescheduledTo,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan reservation: %v", ErrScanRow, err)
	}

	if packageID.Valid {
		reservation.PackageReservationID = packageID.String
	}
	if expiresAt.Valid {
		t := expiresAt.Time
		reservation.TemporaryExpiresAt = &t
	}
	if originalID.Valid {
		s := originalID.String
		reservation.OriginalReservationID = &s
	}
	if rescheduledTo.Valid {
		s := rescheduledTo.String
		reservation.RescheduledToReservationID = &s
	}
	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := r.scanReservationRow(rows)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

func (r *Repository) getHistory(ctx context.Context, executor DBExecutor, reservationID string) ([]domain.HistoryEntry, error) {
	query, args, err := psqlbuilder.Select("id", "reservation_id", "action", "actor", "reason", "changes", "created_at").
		From("reservation_history").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.HistoryEntry, 0)
	for rows.Next() {
		var entry domain.HistoryEntry
		var changes []byte

		err := rows.Scan(&entry.ID, &entry.ReservationID, &entry.Action, &entry.Actor, &entry.Reason, &changes, &entry.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: getHistory - scan row: %v", ErrScanRow, err)
		}
		if len(changes) > 0 {
			if err := json.Unmarshal(changes, &entry.Changes); err != nil {
				return nil, fmt.Errorf("%w: getHistory - decode changes: %v", ErrDecodePayload, err)
			}
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getHistory - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

func (r *Repository) getPackageMembers(ctx context.Context, executor DBExecutor, packageID string) ([]domain.Reservation, error) {
	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"package_reservation_id": packageID}).
		OrderBy("reservation_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getPackageMembers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getPackageMembers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	list, err := r.scanReservations(rows)
	if err != nil {
		return nil, err
	}

	members := make([]domain.Reservation, 0, len(list))
	for _, item := range list {
		members = append(members, *item)
	}
	return members, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
