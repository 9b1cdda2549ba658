package domain

import "time"

type NoteType string

const (
	NoteTypeMaintenance NoteType = "maintenance"
	NoteTypeBlocked     NoteType = "blocked"
	NoteTypeOther       NoteType = "other"
)

// ValidNoteType reports whether t is a known note type.
func ValidNoteType(t NoteType) bool {
	switch t {
	case NoteTypeMaintenance, NoteTypeBlocked, NoteTypeOther:
		return true
	}
	return false
}

// Obstructs reports whether notes of this type exclude availability.
// "other" notes are calendar annotations only and never affect the
// availability math.
func (t NoteType) Obstructs() bool {
	return t == NoteTypeMaintenance || t == NoteTypeBlocked
}

// VehicleNote is an administrative calendar entry for a single day,
// targeting either a whole vehicle (SubunitID nil) or one specific subunit.
// A vehicle-level obstruction dated anywhere inside a queried window makes
// the whole vehicle unavailable for that window.
type VehicleNote struct {
	ID        int32     `json:"id"`
	VehicleID int32     `json:"vehicle_id"`
	SubunitID *int32    `json:"subunit_id,omitempty"`
	NoteType  NoteType  `json:"note_type"`
	NoteDate  time.Time `json:"note_date"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
}

// VehicleLevel reports whether the note targets the whole vehicle.
func (n *VehicleNote) VehicleLevel() bool {
	return n.SubunitID == nil
}
