package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"nearnote/internal/bus"
	"nearnote/internal/geofence"
)

// PlatformHandler is the OS boundary: the monitor daemon and the host
// deliver their signals here and they are re-published on the bus. These
// endpoints are deliberately outside the auth wall.
type PlatformHandler struct {
	Bus   *bus.Bus
	Perms *geofence.PermissionState
}

// Geofence receives a transition delivery from the monitor daemon.
func (h *PlatformHandler) Geofence(w http.ResponseWriter, r *http.Request) {
	var ev geofence.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		log.Printf("platform: undecodable geofence event: %v", err)
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	h.Bus.Publish(bus.GeofenceTransition{Event: ev})
	w.WriteHeader(http.StatusAccepted)
}

// Boot receives the device-restart-completed signal.
func (h *PlatformHandler) Boot(w http.ResponseWriter, r *http.Request) {
	h.Bus.Publish(bus.BootCompleted{})
	w.WriteHeader(http.StatusAccepted)
}

type permissionsReq struct {
	FineLocation       bool `json:"fine_location"`
	BackgroundLocation bool `json:"background_location"`
	Notifications      bool `json:"notifications"`
}

// Permissions receives a permission-grant result. The first grant that
// makes location monitoring possible triggers a resync.
func (h *PlatformHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	var req permissionsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}

	if h.Perms.Grant(req.FineLocation, req.BackgroundLocation, req.Notifications) {
		h.Bus.Publish(bus.PermissionGranted{})
	}
	w.WriteHeader(http.StatusNoContent)
}
