// Package trigger reacts to region-transition events: it resolves each
// triggered region back to a note, re-validates it, and emits the
// notification.
package trigger

import (
	"context"
	"errors"
	"log"

	"nearnote/internal/geofence"
	"nearnote/internal/note"
	"nearnote/internal/notify"
)

type Handler struct {
	Store    *note.Store
	Notifier notify.Notifier
}

// Handle processes one transition event. ENTER and DWELL emit a
// notification per triggering note; EXIT is logged only. A malformed or
// stale trigger is logged and skipped without aborting the rest of the
// event.
func (h *Handler) Handle(ctx context.Context, ev geofence.Event) {
	if ev.ErrorCode != "" {
		log.Printf("trigger: monitor reported error %q, ignoring event", ev.ErrorCode)
		return
	}

	for _, t := range ev.Transitions {
		switch t.Kind {
		case geofence.TransitionEnter, geofence.TransitionDwell:
			h.handleEntry(ctx, t)
		case geofence.TransitionExit:
			// no "left the area" notification
			log.Printf("trigger: exited region %s", t.RequestID)
		default:
			log.Printf("trigger: invalid transition kind %q for region %s", t.Kind, t.RequestID)
		}
	}
}

func (h *Handler) handleEntry(ctx context.Context, t geofence.Transition) {
	id, err := geofence.NoteID(t.RequestID)
	if err != nil {
		// should not happen: request ids are always controller-assigned ints
		log.Printf("trigger: invalid request id %q: %v", t.RequestID, err)
		return
	}

	n, err := h.Store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			log.Printf("trigger: note %d not found, suppressing notification", id)
		} else {
			log.Printf("trigger: lookup of note %d failed: %v", id, err)
		}
		return
	}

	// The note may have been deactivated after its region was registered
	// but before the transition fired.
	if !n.IsActive {
		log.Printf("trigger: note %d no longer active, suppressing notification", id)
		return
	}

	err = h.Notifier.Notify(ctx, notify.Notification{
		ID:      notify.StableID(n.ID),
		Title:   "Near " + n.LocationName,
		Message: n.Title,
		Body:    n.Text,
		NoteID:  n.ID,
	})
	if err != nil {
		log.Printf("trigger: notification for note %d failed: %v", id, err)
	}
}
