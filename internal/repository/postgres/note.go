package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

type noteRepository struct {
	db *sql.DB
}

func NewNoteRepository(db *sql.DB) repository.NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(ctx context.Context, n *domain.VehicleNote) error {
	query := `INSERT INTO vehicle_notes (vehicle_id, subunit_id, note_type, note_date, body, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, n.VehicleID, n.SubunitID, n.NoteType, n.NoteDate, n.Body, time.Now()).Scan(&n.ID)
}

func (r *noteRepository) GetByID(ctx context.Context, id int32) (*domain.VehicleNote, error) {
	n := &domain.VehicleNote{}
	query := `SELECT id, vehicle_id, subunit_id, note_type, note_date, body, created_on FROM vehicle_notes WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&n.ID, &n.VehicleID, &n.SubunitID, &n.NoteType, &n.NoteDate, &n.Body, &n.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

func (r *noteRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_notes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *noteRepository) ListByVehicle(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	query := `SELECT id, vehicle_id, subunit_id, note_type, note_date, body, created_on FROM vehicle_notes
	          WHERE vehicle_id = $1 AND note_date BETWEEN $2::date AND $3::date ORDER BY note_date`
	return r.queryNotes(ctx, query, vehicleID, from, to)
}

func (r *noteRepository) ListObstructions(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	query := `SELECT id, vehicle_id, subunit_id, note_type, note_date, body, created_on FROM vehicle_notes
	          WHERE vehicle_id = $1 AND note_type IN ('maintenance', 'blocked') AND note_date BETWEEN $2::date AND $3::date ORDER BY note_date`
	return r.queryNotes(ctx, query, vehicleID, from, to)
}

func (r *noteRepository) queryNotes(ctx context.Context, query string, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	rows, err := r.db.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []domain.VehicleNote
	for rows.Next() {
		var n domain.VehicleNote
		if err := rows.Scan(&n.ID, &n.VehicleID, &n.SubunitID, &n.NoteType, &n.NoteDate, &n.Body, &n.CreatedOn); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
