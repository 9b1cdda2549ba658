package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"fleetrent-backend/internal/domain"
)

// SubunitStore loads the physical fleet of a vehicle.
type SubunitStore interface {
	ListByVehicle(ctx context.Context, vehicleID int32) ([]domain.Subunit, error)
}

// NoteStore loads obstruction notes (maintenance/blocked only) dated inside
// a window, for a vehicle and all of its subunits.
type NoteStore interface {
	ListObstructions(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.VehicleNote, error)
}

// BookingStore loads active-status bookings on a vehicle's subunits whose
// interval overlaps a window.
type BookingStore interface {
	ListActiveOverlapping(ctx context.Context, vehicleID int32, from, to time.Time) ([]domain.Booking, error)
}

// Result is the outcome of an availability query. AvailableSubunitIDs is
// sorted ascending so the commit protocol's lowest-ID pick is reproducible.
type Result struct {
	AvailableCount      int32   `json:"available_count"`
	AvailableSubunitIDs []int32 `json:"available_subunit_ids"`
	TotalSubunitCount   int32   `json:"total_subunit_count"`
}

// Engine computes date-range availability for a vehicle's subunit fleet by
// combining the unit inventory, the obstruction index and the booking
// ledger. It never mutates state; the write-side counterpart re-runs the
// same logic inside a transaction (see the booking repository).
type Engine struct {
	subunits SubunitStore
	notes    NoteStore
	bookings BookingStore
}

func NewEngine(subunits SubunitStore, notes NoteStore, bookings BookingStore) *Engine {
	return &Engine{subunits: subunits, notes: notes, bookings: bookings}
}

// Query returns the free subunits of vehicleID across [from, to].
//
// A window is half-open nowhere in this system: bounds are inclusive on both
// ends, so a booking ending exactly on `from` or starting exactly on `to`
// conflicts. Same-day turnarounds are treated as unavailable.
func (e *Engine) Query(ctx context.Context, vehicleID int32, from, to time.Time) (*Result, error) {
	if !from.Before(to) {
		ve := &domain.ValidationError{}
		ve.Add("to", "must be after from")
		return nil, ve
	}

	subunits, err := e.subunits.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("load subunits: %w", err)
	}
	if len(subunits) == 0 {
		return &Result{AvailableCount: 0, AvailableSubunitIDs: []int32{}, TotalSubunitCount: 0}, nil
	}

	notes, err := e.notes.ListObstructions(ctx, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load obstruction notes: %w", err)
	}

	// One vehicle-level obstruction anywhere inside the window voids the
	// whole window for every subunit.
	if HasVehicleObstruction(notes) {
		return &Result{
			AvailableCount:      0,
			AvailableSubunitIDs: []int32{},
			TotalSubunitCount:   int32(len(subunits)),
		}, nil
	}

	bookings, err := e.bookings.ListActiveOverlapping(ctx, vehicleID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load overlapping bookings: %w", err)
	}

	free := FreeSubunits(subunits, notes, bookings, from, to)
	return &Result{
		AvailableCount:      int32(len(free)),
		AvailableSubunitIDs: free,
		TotalSubunitCount:   int32(len(subunits)),
	}, nil
}

// Overlaps is the interval test shared by every availability decision:
// inclusive on both ends.
func Overlaps(pickup, dropoff, windowStart, windowEnd time.Time) bool {
	return !pickup.After(windowEnd) && !dropoff.Before(windowStart)
}

// HasVehicleObstruction reports whether any note in the set targets the
// whole vehicle. Callers pass notes already filtered to obstructing types
// and the window's date range.
func HasVehicleObstruction(notes []domain.VehicleNote) bool {
	for i := range notes {
		if notes[i].NoteType.Obstructs() && notes[i].VehicleLevel() {
			return true
		}
	}
	return false
}

// FreeSubunits is the pure core of the engine: given the fleet, the
// window-scoped obstruction notes and the window-overlapping active
// bookings, it returns the IDs of subunits free across [from, to], sorted
// ascending.
//
// A subunit is free iff no active booking on it overlaps the window, no
// obstructing note targets it inside the window, and it is not permanently
// excluded (status maintenance).
func FreeSubunits(subunits []domain.Subunit, notes []domain.VehicleNote, bookings []domain.Booking, from, to time.Time) []int32 {
	obstructed := make(map[int32]bool)
	for i := range bookings {
		b := &bookings[i]
		if b.Status.Occupies() && b.Overlaps(from, to) {
			obstructed[b.SubunitID] = true
		}
	}
	for i := range notes {
		n := &notes[i]
		if n.NoteType.Obstructs() && n.SubunitID != nil {
			obstructed[*n.SubunitID] = true
		}
	}

	free := make([]int32, 0, len(subunits))
	for i := range subunits {
		s := &subunits[i]
		if obstructed[s.ID] || s.PermanentlyExcluded() {
			continue
		}
		free = append(free, s.ID)
	}
	sort.Slice(free, func(i, j int) bool { return free[i] < free[j] })
	return free
}
