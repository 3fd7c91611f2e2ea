package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"nearnote/internal/location"
)

// LocationHandler exposes the in-progress location pick: set a coordinate
// (with or without a known name), read the current selection, clear it.
type LocationHandler struct {
	Selector *location.Selector
}

type selectReq struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name"`
}

func (h *LocationHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req selectReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		h.Selector.SelectNamed(req.Latitude, req.Longitude, name)
	} else {
		h.Selector.Select(req.Latitude, req.Longitude)
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *LocationHandler) Current(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch sel := h.Selector.Current().(type) {
	case location.Coordinates:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state":     "pending",
			"latitude":  sel.Lat,
			"longitude": sel.Lng,
		})
	case location.CoordinatesWithName:
		_ = json.NewEncoder(w).Encode(map[string]any{
			"state":     "resolved",
			"latitude":  sel.Lat,
			"longitude": sel.Lng,
			"name":      sel.Name,
		})
	default:
		_ = json.NewEncoder(w).Encode(map[string]any{"state": "none"})
	}
}

func (h *LocationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.Selector.Clear()
	w.WriteHeader(http.StatusNoContent)
}
