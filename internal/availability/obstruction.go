package availability

import (
	"sort"
	"time"

	"fleetrent-backend/internal/domain"
)

// Target identifies what a calendar query is asking about: a whole vehicle
// or one specific subunit of it.
type Target struct {
	VehicleID int32
	SubunitID *int32
}

// VehicleTarget targets the whole vehicle.
func VehicleTarget(vehicleID int32) Target {
	return Target{VehicleID: vehicleID}
}

// SubunitTarget targets one subunit. Vehicle-level notes still apply to it.
func SubunitTarget(vehicleID, subunitID int32) Target {
	return Target{VehicleID: vehicleID, SubunitID: &subunitID}
}

// ObstructionIndex centralizes the note_type filtering so the availability
// engine and calendar rendering apply identical semantics: only maintenance
// and blocked notes obstruct, "other" notes are informational.
type ObstructionIndex struct {
	notes []domain.VehicleNote
}

func NewObstructionIndex(notes []domain.VehicleNote) *ObstructionIndex {
	return &ObstructionIndex{notes: notes}
}

func (idx *ObstructionIndex) applies(n *domain.VehicleNote, t Target) bool {
	if !n.NoteType.Obstructs() || n.VehicleID != t.VehicleID {
		return false
	}
	// Vehicle-level notes obstruct every subunit; subunit notes obstruct
	// only their own unit (and the vehicle as a whole only when the query
	// targets that unit).
	if n.VehicleLevel() {
		return true
	}
	return t.SubunitID != nil && *n.SubunitID == *t.SubunitID
}

// IsObstructed reports whether an obstructing note targets t on the given
// day. Comparison is date-only.
func (idx *ObstructionIndex) IsObstructed(t Target, date time.Time) bool {
	for i := range idx.notes {
		n := &idx.notes[i]
		if idx.applies(n, t) && sameDay(n.NoteDate, date) {
			return true
		}
	}
	return false
}

// ObstructedDatesInRange returns the deduplicated, sorted days in [from, to]
// on which t is obstructed.
func (idx *ObstructionIndex) ObstructedDatesInRange(t Target, from, to time.Time) []time.Time {
	seen := make(map[time.Time]bool)
	for i := range idx.notes {
		n := &idx.notes[i]
		if !idx.applies(n, t) {
			continue
		}
		day := truncateToDay(n.NoteDate)
		if day.Before(truncateToDay(from)) || day.After(truncateToDay(to)) {
			continue
		}
		seen[day] = true
	}
	dates := make([]time.Time, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sameDay(a, b time.Time) bool {
	return truncateToDay(a).Equal(truncateToDay(b))
}
