package service

import (
	"context"
	"time"

	"fleetrent-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateInWindow(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) GetByID(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}
func (m *MockBookingRepo) List(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingRepo) ListActiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListByVehicleInRange(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ExpireStalePending(ctx context.Context, cutoff time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).([]domain.Booking), args.Error(1)
}
func (m *MockBookingRepo) ListConfirmedPickingUpOn(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, day)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockVehicleRepo
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) GetByID(ctx context.Context, id int32) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}
func (m *MockVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}
func (m *MockVehicleRepo) List(ctx context.Context, category string, activeOnly bool, page, pageSize int32) ([]domain.Vehicle, int32, error) {
	args := m.Called(ctx, category, activeOnly, page, pageSize)
	return args.Get(0).([]domain.Vehicle), args.Get(1).(int32), args.Error(2)
}

// MockSubunitRepo
type MockSubunitRepo struct {
	mock.Mock
}

func (m *MockSubunitRepo) Create(ctx context.Context, s *domain.Subunit) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
func (m *MockSubunitRepo) GetByID(ctx context.Context, id int32) (*domain.Subunit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Subunit), args.Error(1)
}
func (m *MockSubunitRepo) ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Subunit, error) {
	args := m.Called(ctx, vehicleID)
	return args.Get(0).([]domain.Subunit), args.Error(1)
}
func (m *MockSubunitRepo) SetStatus(ctx context.Context, id int32, status domain.SubunitStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockNoteRepo
type MockNoteRepo struct {
	mock.Mock
}

func (m *MockNoteRepo) Create(ctx context.Context, n *domain.VehicleNote) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNoteRepo) GetByID(ctx context.Context, id int32) (*domain.VehicleNote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleNote), args.Error(1)
}
func (m *MockNoteRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockNoteRepo) ListByVehicle(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.VehicleNote), args.Error(1)
}
func (m *MockNoteRepo) ListObstructions(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error) {
	args := m.Called(ctx, vehicleID, from, to)
	return args.Get(0).([]domain.VehicleNote), args.Error(1)
}

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) GetByID(ctx context.Context, id int32) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) GetByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerRepo) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockCustomerRepo) List(ctx context.Context, query string, page, pageSize int32) ([]domain.Customer, int32, error) {
	args := m.Called(ctx, query, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Get(1).(int32), args.Error(2)
}
func (m *MockCustomerRepo) SetBlacklist(ctx context.Context, id int32, blacklisted bool, reason string) error {
	args := m.Called(ctx, id, blacklisted, reason)
	return args.Error(0)
}

// MockLocationRepo
type MockLocationRepo struct {
	mock.Mock
}

func (m *MockLocationRepo) GetByID(ctx context.Context, id int32) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}
func (m *MockLocationRepo) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

// MockAdminRepo
type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdminUser), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingReceived(ctx context.Context, to, name, vehicleName, reference string, pickup, dropoff time.Time) error {
	args := m.Called(ctx, to, name, vehicleName, reference, pickup, dropoff)
	return args.Error(0)
}
func (m *MockEmailService) SendPaymentLink(ctx context.Context, to, name, vehicleName, paymentLink string) error {
	args := m.Called(ctx, to, name, vehicleName, paymentLink)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingConfirmed(ctx context.Context, to, name, vehicleName, reference string, pickup time.Time) error {
	args := m.Called(ctx, to, name, vehicleName, reference, pickup)
	return args.Error(0)
}
func (m *MockEmailService) SendBookingCancelled(ctx context.Context, to, name, vehicleName, reference string) error {
	args := m.Called(ctx, to, name, vehicleName, reference)
	return args.Error(0)
}
func (m *MockEmailService) SendPickupReminder(ctx context.Context, to, name, vehicleName string, pickup time.Time) error {
	args := m.Called(ctx, to, name, vehicleName, pickup)
	return args.Error(0)
}
func (m *MockEmailService) SendAdminAlert(ctx context.Context, subject, message string) error {
	args := m.Called(ctx, subject, message)
	return args.Error(0)
}
