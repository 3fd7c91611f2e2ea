// Package location tracks the in-progress location pick for a note being
// created or edited, including the asynchronous reverse-geocode of a bare
// coordinate into a display name.
package location

import "fmt"

// Selection is the tagged state of the current pick. Coordinates means a
// point was chosen and its display name is still being resolved; that
// pending state is explicit rather than inferred from an absent name.
type Selection interface {
	isSelection()
}

// None means no location is attached.
type None struct{}

// Coordinates is a picked point whose display name is not yet known.
type Coordinates struct {
	Lat float64 `json:"latitude"`
	Lng float64 `json:"longitude"`
}

// CoordinatesWithName is a fully resolved pick (POI, search result, or a
// reverse-geocoded map point).
type CoordinatesWithName struct {
	Lat  float64 `json:"latitude"`
	Lng  float64 `json:"longitude"`
	Name string  `json:"name"`
}

func (None) isSelection()                {}
func (Coordinates) isSelection()         {}
func (CoordinatesWithName) isSelection() {}

// FallbackName synthesizes a display label for a coordinate that could not
// be reverse-geocoded.
func FallbackName(lat, lng float64) string {
	return fmt.Sprintf("near %.5f,%.5f", lat, lng)
}
