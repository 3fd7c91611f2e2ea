// Package bus is the in-process trigger source: platform signals (boot,
// permission grants, geofence transitions) are published here and consumed
// by whoever subscribes, decoupled from the transport that delivered them.
package bus

import (
	"context"
	"log"
	"sync"

	"nearnote/internal/geofence"
)

// BootCompleted signals that the device finished restarting.
type BootCompleted struct{}

// PermissionGranted signals that the location permissions required for
// region monitoring were just granted.
type PermissionGranted struct{}

// GeofenceTransition carries a transition delivery from the monitor.
type GeofenceTransition struct {
	Event geofence.Event
}

// Event is one of the signal types above.
type Event any

const subscriberBuffer = 16

type Bus struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func New() *Bus {
	return &Bus{subs: make(map[chan Event]struct{})}
}

// Subscribe returns a channel of published events, closed when ctx is
// done. A subscriber that falls more than subscriberBuffer events behind
// loses the oldest pending ones.
func (b *Bus) Subscribe(ctx context.Context) <-chan Event {
	ch := make(chan Event, subscriberBuffer)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, ch)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Publish delivers ev to every subscriber without blocking.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// full: drop the oldest pending event to make room
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- ev:
			default:
				log.Printf("bus: dropping event %T for slow subscriber", ev)
			}
		}
	}
}
