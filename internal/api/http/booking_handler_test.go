package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) CreateBooking(ctx context.Context, in *service.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}
func (m *MockBookingService) ListBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Booking), args.Get(1).(int32), args.Error(2)
}
func (m *MockBookingService) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, notes, paymentLink string) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, notes, paymentLink)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

const createBookingBody = `{
	"vehicle_id": 10,
	"pickup_date": "2026-06-12",
	"dropoff_date": "2026-06-13",
	"customer": {"name": "Jane Renter", "email": "jane@example.com"}
}`

func TestBookingHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.AnythingOfType("*service.CreateBookingInput")).
			Return(&domain.Booking{ID: 42, Reference: "BK-REF", Status: domain.BookingStatusPending}, nil)
		handler := NewBookingHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBookingBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var body map[string]domain.Booking
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Equal(t, int32(42), body["booking"].ID)
	})

	t.Run("Validation failure maps to 400 with field errors", func(t *testing.T) {
		svc := new(MockBookingService)
		ve := &domain.ValidationError{}
		ve.Add("dropoff_date", "must be after pickup_date")
		svc.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, ve)
		handler := NewBookingHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBookingBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var body validationBody
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Len(t, body.Errors, 1)
		assert.Equal(t, "dropoff_date", body.Errors[0].Field)
	})

	t.Run("Conflict maps to 409 with a user-facing message", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, &domain.ConflictError{VehicleID: 10})
		handler := NewBookingHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBookingBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body errorBody
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Contains(t, body.Error, "pick different dates")
	})

	t.Run("Blacklisted customer maps to 403", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrBlacklisted)
		handler := NewBookingHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBookingBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Malformed JSON maps to 400", func(t *testing.T) {
		handler := NewBookingHandler(new(MockBookingService))

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Unknown vehicle maps to 404", func(t *testing.T) {
		svc := new(MockBookingService)
		svc.On("CreateBooking", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)
		handler := NewBookingHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(createBookingBody))
		rec := httptest.NewRecorder()
		handler.Create(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
