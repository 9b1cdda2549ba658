package http

import (
	"net/http"
	"time"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

// AdminHandler serves the JWT-guarded back-office endpoints.
type AdminHandler struct {
	auth      service.AuthService
	bookings  service.BookingService
	customers service.CustomerService
	vehicles  service.VehicleService
}

func NewAdminHandler(auth service.AuthService, bookings service.BookingService, customers service.CustomerService, vehicles service.VehicleService) *AdminHandler {
	return &AdminHandler{auth: auth, bookings: bookings, customers: customers, vehicles: vehicles}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	token, admin, err := h.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": token,
		"admin":        admin,
	})
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	bookings, count, err := h.bookings.ListBookings(
		r.Context(),
		q.Get("status"),
		queryInt32(r, "page", 1),
		queryInt32(r, "page_size", 20),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bookings":    bookings,
		"total_count": count,
	})
}

func (h *AdminHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid booking id"})
		return
	}
	booking, err := h.bookings.GetBooking(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

func (h *AdminHandler) UpdateBookingStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid booking id"})
		return
	}
	var in struct {
		Status      string `json:"status"`
		Notes       string `json:"notes"`
		PaymentLink string `json:"payment_link"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	booking, err := h.bookings.UpdateStatus(r.Context(), id, domain.BookingStatus(in.Status), in.Notes, in.PaymentLink)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"booking": booking})
}

func (h *AdminHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid vehicle id"})
		return
	}
	var in struct {
		SubunitID *int32 `json:"subunit_id"`
		NoteType  string `json:"note_type"`
		NoteDate  string `json:"note_date"`
		Body      string `json:"body"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	noteDate, err := time.Parse("2006-01-02", in.NoteDate)
	if err != nil {
		ve := &domain.ValidationError{}
		respondError(w, ve.Add("note_date", "must be a YYYY-MM-DD date"))
		return
	}
	note := &domain.VehicleNote{
		VehicleID: vehicleID,
		SubunitID: in.SubunitID,
		NoteType:  domain.NoteType(in.NoteType),
		NoteDate:  noteDate,
		Body:      in.Body,
	}
	if err := h.vehicles.AddNote(r.Context(), note); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"note": note})
}

func (h *AdminHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	vehicleID, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid vehicle id"})
		return
	}
	// Default to the next twelve months when no explicit range is given.
	from := time.Now().AddDate(0, -1, 0)
	to := time.Now().AddDate(1, 0, 0)
	q := r.URL.Query()
	if raw := q.Get("from"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			from = t
		}
	}
	if raw := q.Get("to"); raw != "" {
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			to = t
		}
	}
	notes, err := h.vehicles.ListNotes(r.Context(), vehicleID, from, to)
	if err != nil {
		respondError(w, err)
		return
	}
	if notes == nil {
		notes = []domain.VehicleNote{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *AdminHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid note id"})
		return
	}
	if err := h.vehicles.DeleteNote(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *AdminHandler) SetSubunitStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid subunit id"})
		return
	}
	var in struct {
		Status string `json:"status"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.vehicles.SetSubunitStatus(r.Context(), id, domain.SubunitStatus(in.Status)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"status": in.Status})
}

func (h *AdminHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in service.CustomerInput
	if !decodeBody(w, r, &in) {
		return
	}
	customer, err := h.customers.CreateCustomer(r.Context(), &in)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"customer": customer})
}

func (h *AdminHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	customers, count, err := h.customers.ListCustomers(
		r.Context(),
		q.Get("query"),
		queryInt32(r, "page", 1),
		queryInt32(r, "page_size", 20),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"customers":   customers,
		"total_count": count,
	})
}

func (h *AdminHandler) SetCustomerBlacklist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid customer id"})
		return
	}
	var in struct {
		Blacklisted bool   `json:"blacklisted"`
		Reason      string `json:"reason"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if err := h.customers.SetBlacklist(r.Context(), id, in.Blacklisted, in.Reason); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"blacklisted": in.Blacklisted})
}
