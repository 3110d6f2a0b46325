package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/MaximoMartin/celebrae-booking-engine/internal/domain"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/dbmetrics"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/psqlbuilder"
	"github.com/MaximoMartin/celebrae-booking-engine/pkg/types"
)

// Repository reads the bookable catalog: organizations, bundles, units,
// addons and availability rules. Schedules and policies are stored as JSON
// documents next to the relational identity columns.
type Repository struct {
	db DBExecutor
}

// NewRepository creates the catalog repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetOrganization fetches one shop with its hours and policies.
func (r *Repository) GetOrganization(ctx context.Context, id string) (*domain.Organization, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"status",
		"weekly_hours",
		"cancellation_policy",
		"modification_policy",
		"created_at",
		"updated_at",
	).
		From("organizations").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrganization - build select query: %v", ErrBuildQuery, err)
	}

	var org domain.Organization
	var weeklyHours, cancellationPolicy, modificationPolicy []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&org.ID,
		&org.Name,
		&org.Status,
		&weeklyHours,
		&cancellationPolicy,
		&modificationPolicy,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetOrganization - scan organization: %v", ErrScanRow, err)
	}

	if len(weeklyHours) > 0 {
		if err := json.Unmarshal(weeklyHours, &org.WeeklyHours); err != nil {
			return nil, fmt.Errorf("%w: GetOrganization - decode weekly hours: %v", ErrDecodePayload, err)
		}
	}
	org.CancellationPolicy = domain.DefaultCancellationPolicy()
	if len(cancellationPolicy) > 0 {
		if err := json.Unmarshal(cancellationPolicy, &org.CancellationPolicy); err != nil {
			return nil, fmt.Errorf("%w: GetOrganization - decode cancellation policy: %v", ErrDecodePayload, err)
		}
	}
	org.ModificationPolicy = domain.DefaultModificationPolicy()
	if len(modificationPolicy) > 0 {
		if err := json.Unmarshal(modificationPolicy, &org.ModificationPolicy); err != nil {
			return nil, fmt.Errorf("%w: GetOrganization - decode modification policy: %v", ErrDecodePayload, err)
		}
	}

	org.CreatedAt = createdAt.Time
	org.UpdatedAt = updatedAt.Time

	return &org, nil
}

// GetBundle fetches one bundle with its component id lists.
func (r *Repository) GetBundle(ctx context.Context, id string) (*domain.Bundle, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"organization_id",
		"name",
		"base_price",
		"unit_ids",
		"addon_ids",
		"max_capacity",
		"instant_book",
		"requires_approval",
		"advance_booking_days",
		"min_notice_minutes",
		"cancellation_policy_text",
		"active",
		"created_at",
		"updated_at",
	).
		From("bundles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBundle - build select query: %v", ErrBuildQuery, err)
	}

	var bundle domain.Bundle
	var unitIDs, addonIDs []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&bundle.ID,
		&bundle.OrganizationID,
		&bundle.Name,
		&bundle.BasePrice,
		&unitIDs,
		&addonIDs,
		&bundle.MaxCapacity,
		&bundle.InstantBook,
		&bundle.RequiresApproval,
		&bundle.AdvanceBookingDays,
		&bundle.MinNoticeMinutes,
		&bundle.CancellationPolicyText,
		&bundle.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBundleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBundle - scan bundle: %v", ErrScanRow, err)
	}

	if len(unitIDs) > 0 {
		if err := json.Unmarshal(unitIDs, &bundle.UnitIDs); err != nil {
			return nil, fmt.Errorf("%w: GetBundle - decode unit ids: %v", ErrDecodePayload, err)
		}
	}
	if len(addonIDs) > 0 {
		if err := json.Unmarshal(addonIDs, &bundle.AddonIDs); err != nil {
			return nil, fmt.Errorf("%w: GetBundle - decode addon ids: %v", ErrDecodePayload, err)
		}
	}

	bundle.CreatedAt = createdAt.Time
	bundle.UpdatedAt = updatedAt.Time

	return &bundle, nil
}

// GetUnit fetches one unit with its schedules.
func (r *Repository) GetUnit(ctx context.Context, id string) (*domain.Unit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"bundle_id",
		"organization_id",
		"name",
		"capacity",
		"duration_minutes",
		"price",
		"is_per_group",
		"weekly_schedule",
		"special_dates",
		"active",
		"created_at",
		"updated_at",
	).
		From("units").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnit - build select query: %v", ErrBuildQuery, err)
	}

	var unit domain.Unit
	var weeklySchedule, specialDates []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&unit.ID,
		&unit.BundleID,
		&unit.OrganizationID,
		&unit.Name,
		&unit.Capacity,
		&unit.DurationMinutes,
		&unit.Price,
		&unit.IsPerGroup,
		&weeklySchedule,
		&specialDates,
		&unit.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnit - scan unit: %v", ErrScanRow, err)
	}

	if len(weeklySchedule) > 0 {
		if err := json.Unmarshal(weeklySchedule, &unit.WeeklySchedule); err != nil {
			return nil, fmt.Errorf("%w: GetUnit - decode weekly schedule: %v", ErrDecodePayload, err)
		}
	}
	if len(specialDates) > 0 {
		if err := json.Unmarshal(specialDates, &unit.SpecialDates); err != nil {
			return nil, fmt.Errorf("%w: GetUnit - decode special dates: %v", ErrDecodePayload, err)
		}
	}

	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return &unit, nil
}

// GetAddon fetches one addon.
func (r *Repository) GetAddon(ctx context.Context, id string) (*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := addonSelect().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddon - build select query: %v", ErrBuildQuery, err)
	}

	addon, err := scanAddon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrAddonNotFound
	}
	if err != nil {
		return nil, err
	}

	return addon, nil
}

// GetAddonsByBundle lists the addons attached to a bundle.
func (r *Repository) GetAddonsByBundle(ctx context.Context, bundleID string) ([]*domain.Addon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := addonSelect().
		Where(squirrel.Eq{"bundle_id": bundleID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByBundle - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByBundle - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	addons := make([]*domain.Addon, 0)
	for rows.Next() {
		addon, err := scanAddon(rows)
		if err != nil {
			return nil, err
		}
		addons = append(addons, addon)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAddonsByBundle - rows error: %v", ErrScanRow, err)
	}

	return addons, nil
}

// GetRulesForChain returns every active rule attached to any level of the
// unit → bundle → organization chain.
func (r *Repository) GetRulesForChain(ctx context.Context, chain domain.TargetChain) ([]*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"rule_type",
		"rule_level",
		"target_id",
		"weekdays",
		"dates",
		"date_from",
		"date_to",
		"window_start",
		"window_end",
		"priority",
		"active",
		"created_at",
		"updated_at",
	).
		From("availability_rules").
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"rule_level": domain.LevelShop}, squirrel.Eq{"target_id": chain.OrganizationID}},
			squirrel.And{squirrel.Eq{"rule_level": domain.LevelBundle}, squirrel.Eq{"target_id": chain.BundleID}},
			squirrel.And{squirrel.Eq{"rule_level": domain.LevelItem}, squirrel.Eq{"target_id": chain.UnitID}},
		}).
		OrderBy("priority DESC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesForChain - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRulesForChain - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.AvailabilityRule, 0)
	for rows.Next() {
		var rule domain.AvailabilityRule
		var weekdays, dates []byte
		var dateFrom, dateTo sql.NullTime
		var windowStart, windowEnd sql.NullString
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Type,
			&rule.Level,
			&rule.TargetID,
			&weekdays,
			&dates,
			&dateFrom,
			&dateTo,
			&windowStart,
			&windowEnd,
			&rule.Priority,
			&rule.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRulesForChain - scan rule: %v", ErrScanRow, err)
		}

		if len(weekdays) > 0 {
			if err := json.Unmarshal(weekdays, &rule.Weekdays); err != nil {
				return nil, fmt.Errorf("%w: GetRulesForChain - decode weekdays: %v", ErrDecodePayload, err)
			}
		}
		if len(dates) > 0 {
			if err := json.Unmarshal(dates, &rule.Dates); err != nil {
				return nil, fmt.Errorf("%w: GetRulesForChain - decode dates: %v", ErrDecodePayload, err)
			}
		}
		if dateFrom.Valid && dateTo.Valid {
			rule.DateRange = &domain.DateRange{From: dateFrom.Time, To: dateTo.Time}
		}
		if windowStart.Valid && windowEnd.Valid {
			window, err := types.NewTimeWindow(windowStart.String, windowEnd.String)
			if err != nil {
				return nil, fmt.Errorf("%w: GetRulesForChain - decode window: %v", ErrDecodePayload, err)
			}
			rule.Window = &window
		}
		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time

		rules = append(rules, &rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRulesForChain - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// Helpers

func addonSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bundle_id",
		"name",
		"price",
		"is_per_group",
		"required_unit_id",
		"max_quantity",
		"required",
		"active",
		"created_at",
		"updated_at",
	).From("addons")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAddon(row rowScanner) (*domain.Addon, error) {
	var addon domain.Addon
	var requiredUnitID sql.NullString
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&addon.ID,
		&addon.BundleID,
		&addon.Name,
		&addon.Price,
		&addon.IsPerGroup,
		&requiredUnitID,
		&addon.MaxQuantity,
		&addon.Required,
		&addon.Active,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scan addon: %v", ErrScanRow, err)
	}

	if requiredUnitID.Valid {
		s := requiredUnitID.String
		addon.RequiredUnitID = &s
	}
	addon.CreatedAt = createdAt.Time
	addon.UpdatedAt = updatedAt.Time

	return &addon, nil
}
