package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/security"
)

// NewRouter wires the public storefront routes and the JWT-guarded admin
// routes under /api/v1.
func NewRouter(
	vehicleHandler *VehicleHandler,
	bookingHandler *BookingHandler,
	adminHandler *AdminHandler,
	tokens security.TokenManager,
) *mux.Router {
	router := mux.NewRouter()
	api := router.PathPrefix("/api/v1").Subrouter()

	// Public storefront
	api.HandleFunc("/vehicles", vehicleHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}", vehicleHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/availability", vehicleHandler.Availability).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{id}/blocked-dates", vehicleHandler.BlockedDates).Methods(http.MethodGet)
	api.HandleFunc("/locations", vehicleHandler.ListLocations).Methods(http.MethodGet)
	api.HandleFunc("/bookings", bookingHandler.Create).Methods(http.MethodPost)

	// Admin back office
	api.HandleFunc("/admin/login", adminHandler.Login).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(AuthMiddleware(tokens))
	admin.HandleFunc("/bookings", adminHandler.ListBookings).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}", adminHandler.GetBooking).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id}/status", adminHandler.UpdateBookingStatus).Methods(http.MethodPut)
	admin.HandleFunc("/vehicles/{id}/notes", adminHandler.AddNote).Methods(http.MethodPost)
	admin.HandleFunc("/vehicles/{id}/notes", adminHandler.ListNotes).Methods(http.MethodGet)
	admin.HandleFunc("/notes/{id}", adminHandler.DeleteNote).Methods(http.MethodDelete)
	admin.HandleFunc("/subunits/{id}/status", adminHandler.SetSubunitStatus).Methods(http.MethodPut)
	admin.HandleFunc("/customers", adminHandler.ListCustomers).Methods(http.MethodGet)
	admin.HandleFunc("/customers", adminHandler.CreateCustomer).Methods(http.MethodPost)
	admin.HandleFunc("/customers/{id}/blacklist", adminHandler.SetCustomerBlacklist).Methods(http.MethodPut)

	return router
}
