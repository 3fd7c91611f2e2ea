package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"nearnote/internal/note"
)

// StreamHandler serves the reactive full note list over Server-Sent
// Events: one snapshot on connect, then one per store mutation.
type StreamHandler struct {
	Store *note.Store
}

func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// subscribe before the initial read so no mutation is missed
	updates := h.Store.Watch(r.Context())

	initial, err := h.Store.All(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if !writeSSE(w, initial) {
		return
	}
	flusher.Flush()

	for list := range updates {
		if !writeSSE(w, list) {
			return
		}
		flusher.Flush()
	}
}

func writeSSE(w http.ResponseWriter, list []note.Note) bool {
	b, err := json.Marshal(list)
	if err != nil {
		return false
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", b)
	return err == nil
}
