package location

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingGeocoder resolves only when released and records context
// cancellation per call.
type blockingGeocoder struct {
	mu       sync.Mutex
	release  chan struct{}
	name     string
	err      error
	canceled int
}

func newBlockingGeocoder(name string) *blockingGeocoder {
	return &blockingGeocoder{release: make(chan struct{}), name: name}
}

func (g *blockingGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	select {
	case <-ctx.Done():
		g.mu.Lock()
		g.canceled++
		g.mu.Unlock()
		return "", ctx.Err()
	case <-g.release:
		return g.name, g.err
	}
}

func (g *blockingGeocoder) canceledCalls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.canceled
}

func TestSelectIsPendingUntilGeocodeResolves(t *testing.T) {
	geo := newBlockingGeocoder("Lausanne, Switzerland")
	s := NewSelector(geo)

	s.Select(46.52, 6.63)

	sel, ok := s.Current().(Coordinates)
	require.True(t, ok, "selection should be name-pending")
	assert.Equal(t, 46.52, sel.Lat)

	close(geo.release)

	require.Eventually(t, func() bool {
		named, ok := s.Current().(CoordinatesWithName)
		return ok && named.Name == "Lausanne, Switzerland"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSelectNamedSkipsGeocode(t *testing.T) {
	geo := newBlockingGeocoder("unused")
	s := NewSelector(geo)

	s.SelectNamed(46.52, 6.63, "EPFL")

	named, ok := s.Current().(CoordinatesWithName)
	require.True(t, ok)
	assert.Equal(t, "EPFL", named.Name)
}

func TestNewSelectCancelsPriorGeocode(t *testing.T) {
	geo := newBlockingGeocoder("slow result")
	s := NewSelector(geo)

	s.Select(1, 1)
	s.SelectNamed(2, 2, "Second pick")

	require.Eventually(t, func() bool {
		return geo.canceledCalls() == 1
	}, 2*time.Second, 10*time.Millisecond)

	named, ok := s.Current().(CoordinatesWithName)
	require.True(t, ok)
	assert.Equal(t, "Second pick", named.Name)

	// releasing the first lookup must not clobber the newer pick
	close(geo.release)
	time.Sleep(50 * time.Millisecond)
	named, ok = s.Current().(CoordinatesWithName)
	require.True(t, ok)
	assert.Equal(t, "Second pick", named.Name)
}

func TestGeocodeFailureFallsBackToSynthesizedName(t *testing.T) {
	geo := newBlockingGeocoder("")
	geo.err = errors.New("service unavailable")
	s := NewSelector(geo)

	s.Select(46.52, 6.63)
	close(geo.release)

	require.Eventually(t, func() bool {
		named, ok := s.Current().(CoordinatesWithName)
		return ok && named.Name == FallbackName(46.52, 6.63)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestClearDropsSelection(t *testing.T) {
	geo := newBlockingGeocoder("n")
	s := NewSelector(geo)

	s.Select(1, 1)
	s.Clear()

	_, ok := s.Current().(None)
	assert.True(t, ok)

	// a late geocode result must not resurrect the cleared pick
	close(geo.release)
	time.Sleep(50 * time.Millisecond)
	_, ok = s.Current().(None)
	assert.True(t, ok)
}

func TestFallbackName(t *testing.T) {
	assert.Equal(t, "near 46.52000,6.63000", FallbackName(46.52, 6.63))
}
