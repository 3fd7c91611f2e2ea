package trigger

import (
	"context"

	"nearnote/internal/bus"
)

// Listener subscribes the handler to the trigger source.
type Listener struct {
	Bus     *bus.Bus
	Handler *Handler
}

// Run consumes geofence transitions until ctx is done. Each event is
// handled in its own goroutine so one slow note lookup does not delay the
// next delivery.
func (l *Listener) Run(ctx context.Context) {
	events := l.Bus.Subscribe(ctx)
	for ev := range events {
		gt, ok := ev.(bus.GeofenceTransition)
		if !ok {
			continue
		}
		go l.Handler.Handle(ctx, gt.Event)
	}
}
