package location

import (
	"context"
	"errors"
	"log"
	"sync"
)

// Geocoder resolves a coordinate into a human-readable place name.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Selector holds the current selection and owns the single in-flight
// reverse geocode: a new pick cancels the previous lookup, so at most one
// is running at a time and a late result for a superseded pick is
// discarded.
type Selector struct {
	mu      sync.Mutex
	geo     Geocoder
	current Selection
	cancel  context.CancelFunc
	seq     uint64
}

func NewSelector(geo Geocoder) *Selector {
	return &Selector{geo: geo, current: None{}}
}

// Select picks a bare coordinate and resolves its name in the background.
// Until the geocode completes the selection is Coordinates (name pending);
// on failure the name falls back to a synthesized "near lat,lng" label.
func (s *Selector) Select(lat, lng float64) {
	s.mu.Lock()
	s.cancelLocked()
	s.current = Coordinates{Lat: lat, Lng: lng}
	s.seq++
	seq := s.seq

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	go func() {
		defer cancel()
		name, err := s.geo.ReverseGeocode(ctx, lat, lng)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Printf("location: reverse geocode of %.5f,%.5f failed: %v", lat, lng, err)
			name = FallbackName(lat, lng)
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		// a newer pick or a clear supersedes this result
		if s.seq != seq {
			return
		}
		s.current = CoordinatesWithName{Lat: lat, Lng: lng, Name: name}
	}()
}

// SelectNamed picks a place that already has a display name (POI or search
// result); no geocode runs.
func (s *Selector) SelectNamed(lat, lng float64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.seq++
	s.current = CoordinatesWithName{Lat: lat, Lng: lng, Name: name}
}

// Clear drops the selection and aborts any pending geocode.
func (s *Selector) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	s.seq++
	s.current = None{}
}

// Current returns the selection as of now.
func (s *Selector) Current() Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Selector) cancelLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}
