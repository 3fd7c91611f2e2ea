package geofence

import (
	"context"
	"sync"

	"nearnote/internal/note"
)

// FakeRegistry is an in-memory Registry that records the registered-region
// set synchronously. Tests use it to observe the set the controller
// maintains; it honors the same empty-input-clears-all policy as the real
// adapter.
type FakeRegistry struct {
	mu      sync.Mutex
	regions map[string]Region
}

func NewFakeRegistry() *FakeRegistry {
	return &FakeRegistry{regions: make(map[string]Region)}
}

func (f *FakeRegistry) AddRegions(ctx context.Context, notes []note.Note) {
	added := make([]Region, 0, len(notes))
	for _, n := range notes {
		if n.Geofenceable() {
			added = append(added, RegionForNote(n))
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(added) == 0 {
		f.regions = make(map[string]Region)
		return
	}
	for _, r := range added {
		f.regions[r.RequestID] = r
	}
}

func (f *FakeRegistry) RemoveRegionsByIDs(ctx context.Context, ids []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		delete(f.regions, id)
	}
}

func (f *FakeRegistry) RemoveAllRegions(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regions = make(map[string]Region)
}

// Regions returns a copy of the current registered-region set.
func (f *FakeRegistry) Regions() map[string]Region {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]Region, len(f.regions))
	for k, v := range f.regions {
		out[k] = v
	}
	return out
}
