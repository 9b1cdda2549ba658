package postgres

import (
	"context"
	"testing"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func windowDay(d int) time.Time {
	return time.Date(2026, time.June, d, 0, 0, 0, 0, time.UTC)
}

func newPendingBooking() *domain.Booking {
	return &domain.Booking{
		Reference:       "BK-TEST-REF",
		VehicleID:       10,
		CustomerID:      3,
		PickupDate:      windowDay(12),
		DropoffDate:     windowDay(13),
		TotalPriceCents: 5000,
	}
}

func TestBookingRepository_CreateInWindow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success picks lowest free subunit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewBookingRepository(db)

		b := newPendingBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, vehicle_id, status FROM subunits").
			WithArgs(b.VehicleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "status"}).
				AddRow(1, 10, "available").
				AddRow(2, 10, "available"))
		mock.ExpectQuery("SELECT id, vehicle_id, subunit_id, note_type, note_date FROM vehicle_notes").
			WithArgs(b.VehicleID, b.PickupDate, b.DropoffDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "subunit_id", "note_type", "note_date"}))
		mock.ExpectQuery("SELECT id, subunit_id, status, pickup_date, dropoff_date FROM bookings").
			WithArgs(b.VehicleID, b.PickupDate, b.DropoffDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "subunit_id", "status", "pickup_date", "dropoff_date"}).
				AddRow(7, 1, "confirmed", windowDay(10), windowDay(15)))
		mock.ExpectQuery("INSERT INTO bookings").
			WithArgs(b.Reference, b.VehicleID, int32(2), b.CustomerID, b.PickupDate, b.DropoffDate, nil, nil, domain.BookingStatusPending, b.TotalPriceCents, "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
		mock.ExpectCommit()

		err = repo.CreateInWindow(ctx, b)
		assert.NoError(t, err)
		assert.Equal(t, int32(42), b.ID)
		assert.Equal(t, int32(2), b.SubunitID)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("All subunits occupied returns conflict without insert", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewBookingRepository(db)

		b := newPendingBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, vehicle_id, status FROM subunits").
			WithArgs(b.VehicleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "status"}).
				AddRow(1, 10, "available").
				AddRow(2, 10, "available"))
		mock.ExpectQuery("SELECT id, vehicle_id, subunit_id, note_type, note_date FROM vehicle_notes").
			WithArgs(b.VehicleID, b.PickupDate, b.DropoffDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "subunit_id", "note_type", "note_date"}))
		mock.ExpectQuery("SELECT id, subunit_id, status, pickup_date, dropoff_date FROM bookings").
			WithArgs(b.VehicleID, b.PickupDate, b.DropoffDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "subunit_id", "status", "pickup_date", "dropoff_date"}).
				AddRow(7, 1, "confirmed", windowDay(10), windowDay(15)).
				AddRow(8, 2, "pending", windowDay(11), windowDay(14)))
		mock.ExpectRollback()

		err = repo.CreateInWindow(ctx, b)
		assert.Error(t, err)
		assert.True(t, domain.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Vehicle-level obstruction returns conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewBookingRepository(db)

		b := newPendingBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, vehicle_id, status FROM subunits").
			WithArgs(b.VehicleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "status"}).
				AddRow(1, 10, "available"))
		mock.ExpectQuery("SELECT id, vehicle_id, subunit_id, note_type, note_date FROM vehicle_notes").
			WithArgs(b.VehicleID, b.PickupDate, b.DropoffDate).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "subunit_id", "note_type", "note_date"}).
				AddRow(5, 10, nil, "blocked", windowDay(12)))
		mock.ExpectRollback()

		err = repo.CreateInWindow(ctx, b)
		assert.True(t, domain.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("No subunits returns conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("error opening mock database: %v", err)
		}
		defer db.Close()
		repo := NewBookingRepository(db)

		b := newPendingBooking()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT id, vehicle_id, status FROM subunits").
			WithArgs(b.VehicleID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "vehicle_id", "status"}))
		mock.ExpectRollback()

		err = repo.CreateInWindow(ctx, b)
		assert.True(t, domain.IsConflict(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := NewBookingRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "reference", "vehicle_id", "subunit_id", "customer_id", "pickup_date", "dropoff_date", "pickup_location_id", "dropoff_location_id", "status", "total_price_cents", "extras_note", "coupon_code", "admin_notes", "payment_link", "created_on", "updated_on"}).
			AddRow(1, "BK-REF", 10, 2, 3, windowDay(12), windowDay(13), nil, nil, "pending", 5000, "", "", "", "", time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		b, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.Equal(t, "BK-REF", b.Reference)
		assert.Equal(t, domain.BookingStatusPending, b.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE id = \\$1").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := NewBookingRepository(db)

	b := &domain.Booking{ID: 1, Status: domain.BookingStatusWaitingPayment, PaymentLink: "https://pay.example/abc"}

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs(b.Status, b.AdminNotes, b.PaymentLink, sqlmock.AnyArg(), b.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), b)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_ExpireStalePending(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()
	repo := NewBookingRepository(db)

	cutoff := windowDay(1)
	rows := sqlmock.NewRows([]string{"id", "reference", "vehicle_id", "subunit_id", "customer_id", "pickup_date", "dropoff_date", "pickup_location_id", "dropoff_location_id", "status", "total_price_cents", "extras_note", "coupon_code", "admin_notes", "payment_link", "created_on", "updated_on"}).
		AddRow(1, "BK-OLD", 10, 2, 3, windowDay(12), windowDay(13), nil, nil, "cancelled", 5000, "", "", "", "", time.Now(), time.Now())

	mock.ExpectQuery("UPDATE bookings SET status='cancelled'").
		WithArgs(cutoff).
		WillReturnRows(rows)

	expired, err := repo.ExpireStalePending(context.Background(), cutoff)
	assert.NoError(t, err)
	assert.Len(t, expired, 1)
	assert.Equal(t, domain.BookingStatusCancelled, expired[0].Status)
}
