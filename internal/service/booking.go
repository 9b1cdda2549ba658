package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/logger"
	"fleetrent-backend/internal/repository"
)

type bookingService struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	customerRepo repository.CustomerRepository
	locationRepo repository.LocationRepository
	emailSvc     EmailService
	adminEmail   string
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	customerRepo repository.CustomerRepository,
	locationRepo repository.LocationRepository,
	emailSvc EmailService,
	adminEmail string,
) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		customerRepo: customerRepo,
		locationRepo: locationRepo,
		emailSvc:     emailSvc,
		adminEmail:   adminEmail,
	}
}

// parseBookingDate accepts full timestamps or bare dates.
func parseBookingDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func (s *bookingService) validate(in *CreateBookingInput) (pickup, dropoff time.Time, err error) {
	ve := &domain.ValidationError{}
	if in.VehicleID <= 0 {
		ve.Add("vehicle_id", "is required")
	}
	if in.PickupDate == "" {
		ve.Add("pickup_date", "is required")
	} else if pickup, err = parseBookingDate(in.PickupDate); err != nil {
		ve.Add("pickup_date", "must be an ISO 8601 date")
	}
	if in.DropoffDate == "" {
		ve.Add("dropoff_date", "is required")
	} else if dropoff, err = parseBookingDate(in.DropoffDate); err != nil {
		ve.Add("dropoff_date", "must be an ISO 8601 date")
	}
	if !pickup.IsZero() && !dropoff.IsZero() && !pickup.Before(dropoff) {
		ve.Add("dropoff_date", "must be after pickup_date")
	}
	if strings.TrimSpace(in.Customer.Name) == "" {
		ve.Add("customer.name", "is required")
	}
	if strings.TrimSpace(in.Customer.Email) == "" {
		ve.Add("customer.email", "is required")
	}
	if in.PickupLocationID != nil && *in.PickupLocationID <= 0 {
		ve.Add("pickup_location_id", "must be a valid location")
	}
	if in.DropoffLocationID != nil && *in.DropoffLocationID <= 0 {
		ve.Add("dropoff_location_id", "must be a valid location")
	}
	if ve.HasErrors() {
		return time.Time{}, time.Time{}, ve
	}
	return pickup, dropoff, nil
}

// CreateBooking runs the storefront write path: validation, blacklist check,
// price quote, then the transactional commit protocol in the booking
// repository. The availability snapshot the client saw is never trusted; the
// repository re-checks inside its transaction and returns a conflict when
// the window filled up in the meantime.
func (s *bookingService) CreateBooking(ctx context.Context, in *CreateBookingInput) (*domain.Booking, error) {
	pickup, dropoff, err := s.validate(in)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsActive {
		return nil, domain.ErrNotFound
	}

	customer, err := s.findOrCreateCustomer(ctx, &in.Customer)
	if err != nil {
		return nil, err
	}
	if customer.IsBlacklisted {
		return nil, domain.ErrBlacklisted
	}

	booking := &domain.Booking{
		Reference:         uuid.NewString(),
		VehicleID:         vehicle.ID,
		CustomerID:        customer.ID,
		PickupDate:        pickup,
		DropoffDate:       dropoff,
		PickupLocationID:  in.PickupLocationID,
		DropoffLocationID: in.DropoffLocationID,
		TotalPriceCents:   quotePriceCents(vehicle, pickup, dropoff),
		ExtrasNote:        in.ExtrasNote,
		CouponCode:        in.CouponCode,
	}

	if err := s.bookingRepo.CreateInWindow(ctx, booking); err != nil {
		return nil, err
	}

	// Notification dispatch is best-effort; a failed email never rolls back
	// a committed booking.
	vehicleName := vehicleDisplayName(vehicle)
	if err := s.emailSvc.SendBookingReceived(ctx, customer.Email, customer.Name, vehicleName, booking.Reference, pickup, dropoff); err != nil {
		logger.Warn("Failed to send booking confirmation email", "booking_id", booking.ID, "error", err)
	}
	if s.adminEmail != "" {
		msg := fmt.Sprintf("New booking %s: %s for %s, %s to %s",
			booking.Reference, customer.Name, vehicleName,
			pickup.Format("2006-01-02"), dropoff.Format("2006-01-02"))
		if err := s.emailSvc.SendAdminAlert(ctx, "New booking received", msg); err != nil {
			logger.Warn("Failed to send admin booking alert", "booking_id", booking.ID, "error", err)
		}
	}

	return booking, nil
}

func (s *bookingService) findOrCreateCustomer(ctx context.Context, in *CustomerInput) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByEmail(ctx, in.Email)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	customer = &domain.Customer{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		LicenseNumber:  in.LicenseNumber,
		LicenseCountry: in.LicenseCountry,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// quotePriceCents charges the daily rate over the inclusive day count.
// Weekly/monthly rates are quoted when the rental is long enough to qualify.
func quotePriceCents(v *domain.Vehicle, pickup, dropoff time.Time) int32 {
	days := int32(dropoff.Sub(pickup).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	switch {
	case days >= 28 && v.MonthlyPriceCents > 0:
		months := (days + 27) / 28
		return months * v.MonthlyPriceCents
	case days >= 7 && v.WeeklyPriceCents > 0:
		weeks := days / 7
		rest := days % 7
		return weeks*v.WeeklyPriceCents + rest*v.DailyPriceCents
	default:
		return days * v.DailyPriceCents
	}
}

func vehicleDisplayName(v *domain.Vehicle) string {
	return fmt.Sprintf("%s %s %d", v.Make, v.Model, v.Year)
}

func (s *bookingService) GetBooking(ctx context.Context, id int32) (*domain.Booking, error) {
	return s.bookingRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, status string, page, pageSize int32) ([]domain.Booking, int32, error) {
	if status != "" && !domain.ValidBookingStatus(domain.BookingStatus(status)) {
		ve := &domain.ValidationError{}
		return nil, 0, ve.Add("status", fmt.Sprintf("unknown booking status %q", status))
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.bookingRepo.List(ctx, status, page, pageSize)
}

// UpdateStatus moves a booking through the validated lifecycle table and
// dispatches the matching customer email. Approving to waiting_payment
// requires a payment link, which is what the email carries.
func (s *bookingService) UpdateStatus(ctx context.Context, id int32, status domain.BookingStatus, notes, paymentLink string) (*domain.Booking, error) {
	if !domain.ValidBookingStatus(status) {
		ve := &domain.ValidationError{}
		return nil, ve.Add("status", fmt.Sprintf("unknown booking status %q", status))
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !booking.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, booking.Status, status)
	}
	if status == domain.BookingStatusWaitingPayment && strings.TrimSpace(paymentLink) == "" {
		ve := &domain.ValidationError{}
		return nil, ve.Add("payment_link", "is required when approving a booking")
	}

	booking.Status = status
	if notes != "" {
		booking.AdminNotes = notes
	}
	if paymentLink != "" {
		booking.PaymentLink = paymentLink
	}
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		return nil, err
	}

	s.notifyStatusChange(ctx, booking)
	return booking, nil
}

func (s *bookingService) notifyStatusChange(ctx context.Context, b *domain.Booking) {
	customer, err := s.customerRepo.GetByID(ctx, b.CustomerID)
	if err != nil {
		logger.Warn("Failed to load customer for status notification", "booking_id", b.ID, "error", err)
		return
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, b.VehicleID)
	if err != nil {
		logger.Warn("Failed to load vehicle for status notification", "booking_id", b.ID, "error", err)
		return
	}
	name := vehicleDisplayName(vehicle)

	switch b.Status {
	case domain.BookingStatusWaitingPayment:
		err = s.emailSvc.SendPaymentLink(ctx, customer.Email, customer.Name, name, b.PaymentLink)
	case domain.BookingStatusConfirmed:
		err = s.emailSvc.SendBookingConfirmed(ctx, customer.Email, customer.Name, name, b.Reference, b.PickupDate)
	case domain.BookingStatusCancelled:
		err = s.emailSvc.SendBookingCancelled(ctx, customer.Email, customer.Name, name, b.Reference)
	default:
		return
	}
	if err != nil {
		logger.Warn("Failed to send status change email", "booking_id", b.ID, "status", b.Status, "error", err)
	}
}
