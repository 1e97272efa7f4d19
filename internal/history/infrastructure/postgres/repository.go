package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"solarcalc/internal/history"
)

// Repository stores calculation records in postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository constructs a repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts a record. Duplicate ids are ignored.
func (r *Repository) Save(ctx context.Context, record *history.Record) error {
	if r == nil || r.db == nil {
		return errors.New("history repo: nil db")
	}
	if record == nil {
		return history.ErrNilRecord
	}
	if record.ID == "" {
		return history.ErrEmptyID
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, `
INSERT INTO sizing_runs (
	id, created_at, mean_consumption_kwh, module_power_w, irradiation,
	recommended_module_count, installed_power_w, inverter_power_w, simple_payback_months
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9
)
ON CONFLICT (id) DO NOTHING`,
		record.ID, createdAt, record.MeanConsumptionKWh, record.ModulePowerW, record.Irradiation,
		record.RecommendedModuleCount, record.InstalledPowerW, record.InverterPowerW, record.SimplePaybackMonths,
	)
	return err
}

// ListRecent returns up to limit records, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]history.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("history repo: nil db")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
SELECT id, created_at, mean_consumption_kwh, module_power_w, irradiation,
	recommended_module_count, installed_power_w, inverter_power_w, simple_payback_months
FROM sizing_runs
ORDER BY created_at DESC
LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []history.Record
	for rows.Next() {
		var record history.Record
		var payback sql.NullInt64
		if err := rows.Scan(
			&record.ID, &record.CreatedAt, &record.MeanConsumptionKWh, &record.ModulePowerW, &record.Irradiation,
			&record.RecommendedModuleCount, &record.InstalledPowerW, &record.InverterPowerW, &payback,
		); err != nil {
			return nil, err
		}
		if payback.Valid {
			months := int(payback.Int64)
			record.SimplePaybackMonths = &months
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
