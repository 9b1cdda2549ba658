package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fleetrent-backend/internal/availability"
	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/repository"
)

const bookingColumns = `id, reference, vehicle_id, subunit_id, customer_id, pickup_date, dropoff_date, pickup_location_id, dropoff_location_id, status, total_price_cents, extras_note, coupon_code, admin_notes, payment_link, created_on, updated_on`

// activeStatusSet is inlined into queries that must only see occupying
// bookings. Keep in sync with domain.ActiveBookingStatuses.
const activeStatusSet = `('pending', 'waiting_payment', 'confirmed')`

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// CreateInWindow is the reservation commit protocol. The availability a
// client saw may be stale by the time it submits, so the whole
// check-then-insert runs in one transaction:
//
//  1. lock the vehicle's subunit rows with SELECT ... FOR UPDATE, which
//     serializes concurrent commits for the same vehicle;
//  2. re-read obstruction notes and overlapping active bookings against the
//     locked snapshot;
//  3. pick the lowest free subunit ID;
//  4. insert the booking as pending and commit.
//
// An empty free set aborts with *domain.ConflictError and writes nothing.
func (r *bookingRepository) CreateInWindow(ctx context.Context, b *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback()

	subunits, err := lockSubunits(ctx, tx, b.VehicleID)
	if err != nil {
		return err
	}
	if len(subunits) == 0 {
		return &domain.ConflictError{VehicleID: b.VehicleID, Message: "vehicle has no rentable units"}
	}

	notes, err := obstructionsInWindow(ctx, tx, b.VehicleID, b.PickupDate, b.DropoffDate)
	if err != nil {
		return err
	}
	if availability.HasVehicleObstruction(notes) {
		return &domain.ConflictError{VehicleID: b.VehicleID, Message: "vehicle is blocked for the requested dates"}
	}

	bookings, err := activeOverlapping(ctx, tx, b.VehicleID, b.PickupDate, b.DropoffDate)
	if err != nil {
		return err
	}

	free := availability.FreeSubunits(subunits, notes, bookings, b.PickupDate, b.DropoffDate)
	if len(free) == 0 {
		return &domain.ConflictError{VehicleID: b.VehicleID}
	}
	b.SubunitID = free[0]
	b.Status = domain.BookingStatusPending

	query := `INSERT INTO bookings (reference, vehicle_id, subunit_id, customer_id, pickup_date, dropoff_date, pickup_location_id, dropoff_location_id, status, total_price_cents, extras_note, coupon_code, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING id`
	err = tx.QueryRowContext(ctx, query, b.Reference, b.VehicleID, b.SubunitID, b.CustomerID, b.PickupDate, b.DropoffDate, b.PickupLocationID, b.DropoffLocationID, b.Status, b.TotalPriceCents, b.ExtrasNote, b.CouponCode, time.Now(), time.Now()).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func lockSubunits(ctx context.Context, tx *sql.Tx, vehicleID int32) ([]domain.Subunit, error) {
	query := `SELECT id, vehicle_id, status FROM subunits WHERE vehicle_id = $1 ORDER BY id FOR UPDATE`
	rows, err := tx.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("lock subunits: %w", err)
	}
	defer rows.Close()

	var subunits []domain.Subunit
	for rows.Next() {
		var s domain.Subunit
		if err := rows.Scan(&s.ID, &s.VehicleID, &s.Status); err != nil {
			return nil, err
		}
		subunits = append(subunits, s)
	}
	return subunits, rows.Err()
}

func obstructionsInWindow(ctx context.Context, tx *sql.Tx, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	query := `SELECT id, vehicle_id, subunit_id, note_type, note_date FROM vehicle_notes
	          WHERE vehicle_id = $1 AND note_type IN ('maintenance', 'blocked') AND note_date BETWEEN $2::date AND $3::date`
	rows, err := tx.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load obstruction notes: %w", err)
	}
	defer rows.Close()

	var notes []domain.VehicleNote
	for rows.Next() {
		var n domain.VehicleNote
		if err := rows.Scan(&n.ID, &n.VehicleID, &n.SubunitID, &n.NoteType, &n.NoteDate); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func activeOverlapping(ctx context.Context, tx *sql.Tx, vehicleID int32, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT id, subunit_id, status, pickup_date, dropoff_date FROM bookings
	          WHERE vehicle_id = $1 AND status IN ` + activeStatusSet + ` AND pickup_date <= $3 AND dropoff_date >= $2`
	rows, err := tx.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load overlapping bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.SubunitID, &b.Status, &b.PickupDate, &b.DropoffDate); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	b := &domain.Booking{}
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.Reference, &b.VehicleID, &b.SubunitID, &b.CustomerID, &b.PickupDate, &b.DropoffDate, &b.PickupLocationID, &b.DropoffLocationID, &b.Status, &b.TotalPriceCents, &b.ExtrasNote, &b.CouponCode, &b.AdminNotes, &b.PaymentLink, &b.CreatedOn, &b.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `UPDATE bookings SET status=$1, admin_notes=$2, payment_link=$3, updated_on=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, b.Status, b.AdminNotes, b.PaymentLink, time.Now(), b.ID)
	return err
}

func (r *bookingRepository) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, count, nil
}

func (r *bookingRepository) ListActiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE vehicle_id = $1 AND status IN ` + activeStatusSet + ` AND pickup_date <= $3 AND dropoff_date >= $2 ORDER BY pickup_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListByVehicleInRange(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE vehicle_id = $1 AND pickup_date <= $3 AND dropoff_date >= $2 ORDER BY pickup_date`
	rows, err := r.db.QueryContext(ctx, query, vehicleID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ExpireStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	query := `UPDATE bookings SET status='cancelled', updated_on=NOW()
	          WHERE status='pending' AND created_on < $1
	          RETURNING ` + bookingColumns
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListConfirmedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
	          WHERE status='confirmed' AND pickup_date::date = $1::date ORDER BY pickup_date`
	rows, err := r.db.QueryContext(ctx, query, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.VehicleID, &b.SubunitID, &b.CustomerID, &b.PickupDate, &b.DropoffDate, &b.PickupLocationID, &b.DropoffLocationID, &b.Status, &b.TotalPriceCents, &b.ExtrasNote, &b.CouponCode, &b.AdminNotes, &b.PaymentLink, &b.CreatedOn, &b.UpdatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
