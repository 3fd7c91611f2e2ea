package geofence

import (
	"context"
	"sync"

	"nearnote/internal/note"
)

// Registry wraps the platform region-monitoring service. Every call is
// asynchronous and best-effort: outcomes are logged, never returned, never
// retried. A transient failure leaves the registered set diverged from the
// store until the next full resync.
type Registry interface {
	// AddRegions registers one region per geofenceable note in the input.
	// The input is re-filtered against the participation predicate; if the
	// filtered set is empty this clears every registered region instead
	// (the bulk-resync caller relies on that).
	AddRegions(ctx context.Context, notes []note.Note)

	// RemoveRegionsByIDs unregisters the regions with the given request
	// ids. No-op on empty input.
	RemoveRegionsByIDs(ctx context.Context, ids []string)

	// RemoveAllRegions unregisters every region owned by this adapter's
	// callback token.
	RemoveAllRegions(ctx context.Context)
}

// Permissions reports whether the agent currently holds the platform
// permissions region monitoring needs.
type Permissions interface {
	LocationGranted() bool
}

// PermissionState is a mutable Permissions implementation fed by
// permission-grant events. Monitoring needs both fine and background
// location.
type PermissionState struct {
	mu            sync.Mutex
	fine          bool
	background    bool
	notifications bool
}

func NewPermissionState(granted bool) *PermissionState {
	return &PermissionState{fine: granted, background: granted, notifications: granted}
}

// Grant records a permission result. Returns true if location monitoring
// became available with this grant.
func (p *PermissionState) Grant(fine, background, notifications bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	had := p.fine && p.background
	p.fine = fine
	p.background = background
	p.notifications = notifications
	return !had && fine && background
}

func (p *PermissionState) LocationGranted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fine && p.background
}

func (p *PermissionState) NotificationsGranted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notifications
}
