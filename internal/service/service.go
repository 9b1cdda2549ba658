package service

import (
	"context"
	"time"

	"fleetrent-backend/internal/availability"
	"fleetrent-backend/internal/domain"
)

// CustomerInput is the customer block of a storefront booking request.
type CustomerInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LicenseNumber  string `json:"license_number"`
	LicenseCountry string `json:"license_country"`
}

// CreateBookingInput is the storefront booking submission. Dates arrive as
// strings so the service owns all date validation.
type CreateBookingInput struct {
	VehicleID         int32         `json:"vehicle_id"`
	PickupDate        string        `json:"pickup_date"`
	DropoffDate       string        `json:"dropoff_date"`
	PickupLocationID  *int32        `json:"pickup_location_id"`
	DropoffLocationID *int32        `json:"dropoff_location_id"`
	Customer          CustomerInput `json:"customer"`
	ExtrasNote        string        `json:"extras_note"`
	CouponCode        string        `json:"coupon_code"`
}

// DateRange is one occupied interval, for calendar display.
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// AvailabilityResult is the read-path availability answer for one vehicle.
type AvailabilityResult struct {
	Available      bool        `json:"available"`
	AvailableCount int32       `json:"available_count"`
	TotalCount     int32       `json:"total_count"`
	BookedDates    []DateRange `json:"booked_dates"`
}

// BlockedDatesResult feeds the storefront calendar: bookings of every status
// (cancelled included, for display only) plus obstructed days.
type BlockedDatesResult struct {
	Bookings     []domain.Booking `json:"bookings"`
	BlockedDates []time.Time      `json:"blocked_dates"`
}

// VehicleListing is a catalog row, optionally annotated with availability
// when the list query carried a date window.
type VehicleListing struct {
	Vehicle      domain.Vehicle       `json:"vehicle"`
	Availability *availability.Result `json:"availability,omitempty"`
}

type BookingService interface {
	CreateBooking(ctx context.Context, in *CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int32) (*domain.Booking, error)
	ListBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error)
	UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, notes, paymentLink string) (*domain.Booking, error)
}

type VehicleService interface {
	GetVehicle(ctx context.Context, id int32) (*domain.Vehicle, []domain.Subunit, error)
	ListVehicles(ctx context.Context, category, availableFrom, availableTo string, page, pageSize int32) ([]VehicleListing, int32, error)
	QueryAvailability(ctx context.Context, vehicleID int32, from, to string) (*AvailabilityResult, error)
	BlockedDates(ctx context.Context, vehicleID int32, month, year int) (*BlockedDatesResult, error)
	AddNote(ctx context.Context, n *domain.VehicleNote) error
	ListNotes(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error)
	DeleteNote(ctx context.Context, noteID int32) error
	SetSubunitStatus(ctx context.Context, subunitID int32, status domain.SubunitStatus) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, in *CustomerInput) (*domain.Customer, error)
	ListCustomers(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error)
	GetCustomer(ctx context.Context, id int32) (*domain.Customer, error)
	SetBlacklist(ctx context.Context, id int32, blacklisted bool, reason string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.AdminUser, error)
}

type LocationService interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}

type EmailService interface {
	SendBookingReceived(ctx context.Context, to, name, vehicleName, reference string, pickup, dropoff time.Time) error
	SendPaymentLink(ctx context.Context, to, name, vehicleName, paymentLink string) error
	SendBookingConfirmed(ctx context.Context, to, name, vehicleName, reference string, pickup time.Time) error
	SendBookingCancelled(ctx context.Context, to, name, vehicleName, reference string) error
	SendPickupReminder(ctx context.Context, to, name, vehicleName string, pickup time.Time) error
	SendAdminAlert(ctx context.Context, subject, message string) error
}
