package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fleetrent-backend/internal/domain"
	"fleetrent-backend/internal/service"
)

// VehicleHandler serves the public catalog and availability endpoints.
type VehicleHandler struct {
	vehicles  service.VehicleService
	locations service.LocationService
}

func NewVehicleHandler(vehicles service.VehicleService, locations service.LocationService) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, locations: locations}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

func queryInt32(r *http.Request, name string, fallback int32) int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	listings, count, err := h.vehicles.ListVehicles(
		r.Context(),
		q.Get("category"),
		q.Get("available_from"),
		q.Get("available_to"),
		queryInt32(r, "page", 1),
		queryInt32(r, "page_size", 20),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vehicles":    listings,
		"total_count": count,
	})
}

func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid vehicle id"})
		return
	}
	vehicle, subunits, err := h.vehicles.GetVehicle(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	if subunits == nil {
		subunits = []domain.Subunit{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"vehicle":  vehicle,
		"subunits": subunits,
	})
}

func (h *VehicleHandler) Availability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid vehicle id"})
		return
	}
	q := r.URL.Query()
	result, err := h.vehicles.QueryAvailability(r.Context(), id, q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *VehicleHandler) BlockedDates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "invalid vehicle id"})
		return
	}
	month := int(queryInt32(r, "month", 0))
	year := int(queryInt32(r, "year", 0))
	result, err := h.vehicles.BlockedDates(r.Context(), id, month, year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *VehicleHandler) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.locations.ListLocations(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if locations == nil {
		locations = []domain.Location{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"locations": locations})
}
