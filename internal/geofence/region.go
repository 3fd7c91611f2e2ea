package geofence

import (
	"strconv"

	"nearnote/internal/note"
)

// Region is the descriptor submitted to the monitor daemon: one circular
// area per geofenceable note. Regions are derived state; they are rebuilt
// from the store and never treated as a source of truth.
type Region struct {
	RequestID   string   `json:"request_id"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	RadiusM     float64  `json:"radius_m"`
	Transitions []string `json:"transitions"`
}

// RegionForNote builds the region descriptor for a note. The note id,
// stringified, serves as the region's external identifier. Regions never
// expire; the monitor reports both boundary crossings.
func RegionForNote(n note.Note) Region {
	return Region{
		RequestID:   RequestID(n.ID),
		Latitude:    n.Latitude,
		Longitude:   n.Longitude,
		RadiusM:     n.Radius,
		Transitions: []string{string(TransitionEnter), string(TransitionExit)},
	}
}

// RequestID maps a note id to its region request id.
func RequestID(noteID int64) string {
	return strconv.FormatInt(noteID, 10)
}

// NoteID parses a region request id back into a note id.
func NoteID(requestID string) (int64, error) {
	return strconv.ParseInt(requestID, 10, 64)
}
