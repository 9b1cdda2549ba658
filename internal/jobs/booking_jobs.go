package jobs

import (
	"context"
	"fmt"
	"time"

	"fleetrent-backend/internal/logger"
)

// ExpireStalePendingBookings cancels pending bookings that were never
// approved within the configured TTL, so abandoned checkouts stop holding
// subunits against real customers.
func (jr *JobRunner) ExpireStalePendingBookings() {
	jr.runWithRecovery("ExpireStalePendingBookings", func() {
		ctx := context.Background()

		ttl := jr.config.Booking.PendingTTLDays
		cutoff := time.Now().AddDate(0, 0, -ttl)

		expired, err := jr.store.BookingRepository.ExpireStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale pending bookings", "error", err)
			return
		}

		logger.Info("Expired stale pending bookings", "count", len(expired), "ttl_days", ttl)

		for i := range expired {
			b := &expired[i]
			logger.Debug("Cancelled stale pending booking",
				"booking_id", b.ID,
				"reference", b.Reference,
				"vehicle_id", b.VehicleID,
				"created_on", b.CreatedOn)

			customer, err := jr.store.CustomerRepository.GetByID(ctx, b.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for expiry notice", "booking_id", b.ID, "error", err)
				continue
			}
			vehicle, err := jr.store.VehicleRepository.GetByID(ctx, b.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for expiry notice", "booking_id", b.ID, "error", err)
				continue
			}
			name := fmt.Sprintf("%s %s %d", vehicle.Make, vehicle.Model, vehicle.Year)
			if err := jr.emailSvc.SendBookingCancelled(ctx, customer.Email, customer.Name, name, b.Reference); err != nil {
				logger.Error("Failed to send expiry notice", "booking_id", b.ID, "error", err)
			}
		}
	})
}

// SendPickupReminders emails customers with confirmed bookings picking up
// tomorrow.
func (jr *JobRunner) SendPickupReminders() {
	jr.runWithRecovery("SendPickupReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().AddDate(0, 0, 1)
		bookings, err := jr.store.BookingRepository.ListConfirmedPickingUpOn(ctx, tomorrow)
		if err != nil {
			logger.Error("Failed to list bookings for pickup reminders", "error", err)
			return
		}

		sent := 0
		for i := range bookings {
			b := &bookings[i]
			customer, err := jr.store.CustomerRepository.GetByID(ctx, b.CustomerID)
			if err != nil {
				logger.Error("Failed to load customer for pickup reminder", "booking_id", b.ID, "error", err)
				continue
			}
			vehicle, err := jr.store.VehicleRepository.GetByID(ctx, b.VehicleID)
			if err != nil {
				logger.Error("Failed to load vehicle for pickup reminder", "booking_id", b.ID, "error", err)
				continue
			}
			name := fmt.Sprintf("%s %s %d", vehicle.Make, vehicle.Model, vehicle.Year)
			if err := jr.emailSvc.SendPickupReminder(ctx, customer.Email, customer.Name, name, b.PickupDate); err != nil {
				logger.Error("Failed to send pickup reminder", "booking_id", b.ID, "error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent pickup reminders", "count", sent, "eligible", len(bookings))
	})
}
