// Package bootstrap re-establishes the registered-region set after the
// events that wipe or unlock it: device restart and the first grant of the
// location permissions monitoring needs.
package bootstrap

import (
	"context"
	"log"

	"nearnote/internal/bus"
)

// Listener triggers a full resync on every boot-completed and
// permission-granted signal. There is no debouncing: concurrent signals
// each run a resync to completion, which is safe because resync is
// idempotent.
type Listener struct {
	Bus    *bus.Bus
	Resync func(ctx context.Context) error
}

func (l *Listener) Run(ctx context.Context) {
	events := l.Bus.Subscribe(ctx)
	for ev := range events {
		switch ev.(type) {
		case bus.BootCompleted:
			log.Printf("bootstrap: device boot completed, resyncing regions")
		case bus.PermissionGranted:
			log.Printf("bootstrap: location permission granted, resyncing regions")
		default:
			continue
		}
		go func() {
			if err := l.Resync(ctx); err != nil {
				log.Printf("bootstrap: resync failed: %v", err)
			}
		}()
	}
}
