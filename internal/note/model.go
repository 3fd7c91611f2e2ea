package note

// DefaultRadius is the trigger radius in meters used when a note does not
// specify one.
const DefaultRadius = 100.0

// Note is the sole persisted entity. A note may carry a location; the pair
// (0, 0) means "no location attached" (a sentinel inherited from the schema,
// ambiguous with the real point 0°,0°).
type Note struct {
	ID           int64   `gorm:"primaryKey" json:"id"`
	Title        string  `gorm:"type:text;not null" json:"title"`
	Text         string  `gorm:"type:text;not null;default:''" json:"text"`
	LocationName string  `gorm:"type:text;not null;default:''" json:"location_name"`
	Latitude     float64 `gorm:"not null;default:0" json:"latitude"`
	Longitude    float64 `gorm:"not null;default:0" json:"longitude"`
	// No default tags here: gorm skips zero-valued fields that carry one
	// on Create, which would flip an inactive note to active (and a zero
	// radius to 100) between the in-memory note and the stored row.
	// Defaults are applied in code before insert.
	Radius   float64 `gorm:"not null" json:"radius"`
	IsActive bool    `gorm:"not null" json:"is_active"`
}

// HasLocation reports whether the note has a location attached.
func (n *Note) HasLocation() bool {
	return n.Latitude != 0 || n.Longitude != 0
}

// Geofenceable is the participation predicate: only active notes with a
// location get a registered region. The store's filtered query must stay in
// lock-step with this method.
func (n *Note) Geofenceable() bool {
	return n.IsActive && n.HasLocation()
}
