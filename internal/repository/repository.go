package repository

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"
)

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	GetByID(ctx context.Context, id int32) (*domain.Vehicle, error)
	Update(ctx context.Context, v *domain.Vehicle) error
	List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Vehicle, int32, error)
}

type SubunitRepository interface {
	Create(ctx context.Context, s *domain.Subunit) error
	GetByID(ctx context.Context, id int32) (*domain.Subunit, error)
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Subunit, error)
	SetStatus(ctx context.Context, id int32, status domain.SubunitStatus) error
}

type NoteRepository interface {
	Create(ctx context.Context, n *domain.VehicleNote) error
	GetByID(ctx context.Context, id int32) (*domain.VehicleNote, error)
	Delete(ctx context.Context, id int32) error
	// ListByVehicle returns every note in the date range regardless of type,
	// for calendar rendering.
	ListByVehicle(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error)
	// ListObstructions returns only maintenance/blocked notes dated inside
	// [from, to], for the availability engine.
	ListObstructions(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error)
}

type BookingRepository interface {
	// CreateInWindow runs the reservation commit protocol: inside one
	// transaction it locks the vehicle's subunit rows, re-checks
	// availability for [b.PickupDate, b.DropoffDate], assigns the lowest
	// free subunit ID and inserts the booking as pending. Returns a
	// *domain.ConflictError when no subunit is free; no row is written in
	// that case.
	CreateInWindow(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int32) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	List(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	// ListActiveOverlapping returns active-status bookings on the vehicle's
	// subunits overlapping [from, to] (inclusive bounds).
	ListActiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error)
	// ListByVehicleInRange returns bookings of every status overlapping the
	// range, for calendar display only.
	ListByVehicleInRange(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error)
	// ExpireStalePending cancels pending bookings created before cutoff and
	// returns the cancelled rows.
	ExpireStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error)
	// ListConfirmedPickingUpOn returns confirmed bookings whose pickup date
	// falls on the given day.
	ListConfirmedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id int32) (*domain.Customer, error)
	GetByEmail(ctx context.Context, email string) (*domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
	SetBlacklist(ctx context.Context, id int32, blacklisted bool, reason string) error
}

type LocationRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.Location, error)
	List(ctx context.Context) ([]domain.Location, error)
}

type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}
