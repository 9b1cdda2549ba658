package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"
	BookingStatusWaitingPayment BookingStatus = "waiting_payment"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusCancelled      BookingStatus = "cancelled"
	BookingStatusCompleted      BookingStatus = "completed"
)

// ActiveBookingStatuses are the statuses that occupy a subunit for overlap
// purposes. Cancelled and completed bookings never obstruct new bookings.
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusWaitingPayment,
	BookingStatusConfirmed,
}

// Occupies reports whether a booking in this status holds its subunit.
func (s BookingStatus) Occupies() bool {
	switch s {
	case BookingStatusPending, BookingStatusWaitingPayment, BookingStatusConfirmed:
		return true
	}
	return false
}

// ValidBookingStatus reports whether s is a known lifecycle status.
func ValidBookingStatus(s BookingStatus) bool {
	switch s {
	case BookingStatusPending, BookingStatusWaitingPayment, BookingStatusConfirmed,
		BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// bookingTransitions is the validated lifecycle table. Cancelled and
// completed are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:        {BookingStatusWaitingPayment, BookingStatusCancelled},
	BookingStatusWaitingPayment: {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed:      {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCancelled:      {},
	BookingStatusCompleted:      {},
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking occupies exactly one subunit for the closed interval
// [PickupDate, DropoffDate]. Overlap against a queried window uses the
// inclusive test: pickup <= windowEnd AND dropoff >= windowStart, so a
// booking ending on the same day another starts still conflicts.
type Booking struct {
	ID                int32         `json:"id"`
	Reference         string        `json:"reference"`
	VehicleID         int32         `json:"vehicle_id"`
	SubunitID         int32         `json:"subunit_id"`
	CustomerID        int32         `json:"customer_id"`
	PickupDate        time.Time     `json:"pickup_date"`
	DropoffDate       time.Time     `json:"dropoff_date"`
	PickupLocationID  *int32        `json:"pickup_location_id,omitempty"`
	DropoffLocationID *int32        `json:"dropoff_location_id,omitempty"`
	Status            BookingStatus `json:"status"`
	TotalPriceCents   int32         `json:"total_price_cents"`
	ExtrasNote        string        `json:"extras_note,omitempty"`
	CouponCode        string        `json:"coupon_code,omitempty"`
	AdminNotes        string        `json:"admin_notes,omitempty"`
	PaymentLink       string        `json:"payment_link,omitempty"`
	CreatedOn         time.Time     `json:"created_on"`
	UpdatedOn         time.Time     `json:"updated_on"`
}

// Overlaps reports whether the booking conflicts with [from, to] using the
// inclusive interval test.
func (b *Booking) Overlaps(from, to time.Time) bool {
	return !b.PickupDate.After(to) && !b.DropoffDate.Before(from)
}
