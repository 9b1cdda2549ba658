package http

import (
	"net/http"

	"fleetrent-backend/internal/service"
)

// BookingHandler serves the storefront booking commit endpoint.
type BookingHandler struct {
	bookings service.BookingService
}

func NewBookingHandler(bookings service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Create is the write path. Success is 201; a lost availability race is a
// 409; malformed input is a 400 with per-field messages.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in service.CreateBookingInput
	if !decodeBody(w, r, &in) {
		return
	}
	booking, err := h.bookings.CreateBooking(r.Context(), &in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"booking": booking})
}
