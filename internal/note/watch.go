package note

import (
	"context"
	"sync"
)

// watchHub fans the note list out to subscribers. Each subscriber has a
// one-slot buffer; publishing replaces an unconsumed list so a slow reader
// always sees the most recent state instead of blocking writers.
type watchHub struct {
	mu   sync.Mutex
	subs map[chan []Note]struct{}
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[chan []Note]struct{})}
}

func (h *watchHub) subscribe(ctx context.Context) <-chan []Note {
	ch := make(chan []Note, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, ch)
		close(ch)
		h.mu.Unlock()
	}()

	return ch
}

func (h *watchHub) hasSubscribers() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs) > 0
}

func (h *watchHub) publish(list []Note) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		// drop the stale pending list, if any, then send
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- list:
		default:
		}
	}
}
