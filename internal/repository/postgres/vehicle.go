package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(db *sql.DB) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (make, model, year, category, daily_price_cents, weekly_price_cents, monthly_price_cents, description, is_active, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	return r.db.QueryRowContext(ctx, query, v.Make, v.Model, v.Year, v.Category, v.DailyPriceCents, v.WeeklyPriceCents, v.MonthlyPriceCents, v.Description, v.IsActive, time.Now(), time.Now()).Scan(&v.ID)
}

func (r *vehicleRepository) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	v := &domain.Vehicle{}
	query := `SELECT id, make, model, year, category, daily_price_cents, weekly_price_cents, monthly_price_cents, description, is_active, created_on, updated_on FROM vehicles WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Category, &v.DailyPriceCents, &v.WeeklyPriceCents, &v.MonthlyPriceCents, &v.Description, &v.IsActive, &v.CreatedOn, &v.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *vehicleRepository) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET make=$1, model=$2, year=$3, category=$4, daily_price_cents=$5, weekly_price_cents=$6, monthly_price_cents=$7, description=$8, is_active=$9, updated_on=$10 WHERE id=$11`
	_, err := r.db.ExecContext(ctx, query, v.Make, v.Model, v.Year, v.Category, v.DailyPriceCents, v.WeeklyPriceCents, v.MonthlyPriceCents, v.Description, v.IsActive, time.Now(), v.ID)
	return err
}

func (r *vehicleRepository) List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, make, model, year, category, daily_price_cents, weekly_price_cents, monthly_price_cents, description, is_active, created_on, updated_on FROM vehicles WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if activeOnly {
		query += " AND is_active = true"
	}
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY make, model LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var vehicles []domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Category, &v.DailyPriceCents, &v.WeeklyPriceCents, &v.MonthlyPriceCents, &v.Description, &v.IsActive, &v.CreatedOn, &v.UpdatedOn); err != nil {
			return nil, 0, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, count, rows.Err()
}
