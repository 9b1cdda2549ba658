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

type subunitRepository struct {
	db *sql.DB
}

func NewSubunitRepository(db *sql.DB) repository.SubunitRepository {
	return &subunitRepository{db: db}
}

func (r *subunitRepository) Create(ctx context.Context, s *domain.Subunit) error {
	query := `INSERT INTO subunits (vehicle_id, license_plate, vin, color, mileage, status, location_id, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, s.VehicleID, s.LicensePlate, s.VIN, s.Color, s.Mileage, s.Status, s.LocationID, time.Now(), time.Now()).Scan(&s.ID)
}

func (r *subunitRepository) GetByID(ctx context.Context, id int32) (*domain.Subunit, error) {
	s := &domain.Subunit{}
	query := `SELECT id, vehicle_id, license_plate, vin, color, mileage, status, location_id, created_on, updated_on FROM subunits WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.VehicleID, &s.LicensePlate, &s.VIN, &s.Color, &s.Mileage, &s.Status, &s.LocationID, &s.CreatedOn, &s.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *subunitRepository) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Subunit, error) {
	query := `SELECT id, vehicle_id, license_plate, vin, color, mileage, status, location_id, created_on, updated_on FROM subunits WHERE vehicle_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subunits []domain.Subunit
	for rows.Next() {
		var s domain.Subunit
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.LicensePlate, &s.VIN, &s.Color, &s.Mileage, &s.Status, &s.LocationID, &s.CreatedOn, &s.UpdatedOn); err != nil {
			return nil, err
		}
		subunits = append(subunits, s)
	}
	return subunits, rows.Err()
}

func (r *subunitRepository) SetStatus(ctx context.Context, id int32, status domain.SubunitStatus) error {
	if !domain.ValidSubunitStatus(status) {
		ve := &domain.ValidationError{}
		return ve.Add("status", fmt.Sprintf("unknown subunit status %q", status))
	}
	res, err := r.db.ExecContext(ctx, `UPDATE subunits SET status=$1, updated_on=$2 WHERE id=$3`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
