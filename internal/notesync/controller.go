// Package notesync keeps the platform's registered-region set consistent
// with the set of active, located notes in the store.
package notesync

import (
	"context"
	"log"

	"nearnote/internal/geofence"
	"nearnote/internal/note"
)

// Controller owns the invariant "registered regions == {id, center, radius}
// of geofenceable notes". It is write-only toward the registry: it never
// asks the platform which regions exist, it only issues mutations and
// relies on ResyncAll to heal any drift (the store is ground truth, the
// registry a derived cache).
//
// Sub-steps within one operation are ordered; concurrent operations are
// not serialized against each other. That is accepted: registry calls are
// idempotent per request id and the next resync reconciles.
type Controller struct {
	Store    *note.Store
	Registry geofence.Registry
}

// Create inserts the note and, once the store has assigned its real id,
// registers its region if it participates. A crash between the two leaves
// a note without a region, which the next resync repairs; the reverse
// order could leave an orphaned region for a nonexistent note.
func (c *Controller) Create(ctx context.Context, n *note.Note) error {
	if err := c.Store.Insert(ctx, n); err != nil {
		return err
	}
	if n.Geofenceable() {
		c.Registry.AddRegions(ctx, []note.Note{*n})
	}
	return nil
}

// Modify removes the note's region unconditionally, re-adds it only if the
// note still participates, then writes the update. Location, radius, and
// the active flag may have changed in any combination; remove-then-add
// avoids diffing at the cost of a brief window with no region.
func (c *Controller) Modify(ctx context.Context, n *note.Note) error {
	c.Registry.RemoveRegionsByIDs(ctx, []string{geofence.RequestID(n.ID)})
	if n.Geofenceable() {
		c.Registry.AddRegions(ctx, []note.Note{*n})
	}
	return c.Store.Update(ctx, n)
}

// Remove deletes the note and unregisters its region, whatever its prior
// active/location state.
func (c *Controller) Remove(ctx context.Context, n *note.Note) error {
	if err := c.Store.Delete(ctx, n); err != nil {
		return err
	}
	c.Registry.RemoveRegionsByIDs(ctx, []string{geofence.RequestID(n.ID)})
	return nil
}

// ResyncAll is the sole recovery mechanism for drift: a full
// reconciliation, not an incremental diff. It clears every registered
// region and re-registers one per geofenceable note (the clear alone
// suffices when none participate).
func (c *Controller) ResyncAll(ctx context.Context) error {
	active, err := c.Store.Geofenceable(ctx)
	if err != nil {
		return err
	}
	c.Registry.RemoveAllRegions(ctx)
	if len(active) > 0 {
		c.Registry.AddRegions(ctx, active)
	}
	log.Printf("notesync: resynced %d active geofenceable note(s)", len(active))
	return nil
}
