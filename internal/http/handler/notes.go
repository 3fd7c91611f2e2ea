package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"nearnote/internal/note"
	"nearnote/internal/notesync"

	"github.com/go-chi/chi/v5"
)

// NoteHandler is the user mutation surface. Every write goes through the
// synchronization controller so the registered-region set follows the
// store; reads go straight to the store.
type NoteHandler struct {
	Ctl   *notesync.Controller
	Store *note.Store
}

type noteReq struct {
	Title        string  `json:"title"`
	Text         string  `json:"text"`
	LocationName string  `json:"location_name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Radius       float64 `json:"radius"`
	IsActive     *bool   `json:"is_active"`
}

func (req *noteReq) toNote() (*note.Note, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return nil, errors.New("title required")
	}
	n := &note.Note{
		Title:        req.Title,
		Text:         req.Text,
		LocationName: req.LocationName,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Radius:       req.Radius,
		IsActive:     true,
	}
	if n.Radius <= 0 {
		n.Radius = note.DefaultRadius
	}
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}
	return n, nil
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req noteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	n, err := req.toNote()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Ctl.Create(r.Context(), n); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(n)
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	if _, err := h.getOr404(w, r, id); err != nil {
		return
	}

	var req noteReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	n, err := req.toNote()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	n.ID = id

	if err := h.Ctl.Modify(r.Context(), n); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	n, err := h.getOr404(w, r, id)
	if err != nil {
		return
	}

	if err := h.Ctl.Remove(r.Context(), n); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	notes, err := h.Store.All(r.Context())
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(notes)
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := noteID(w, r)
	if !ok {
		return
	}
	n, err := h.getOr404(w, r, id)
	if err != nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(n)
}

func (h *NoteHandler) getOr404(w http.ResponseWriter, r *http.Request, id int64) (*note.Note, error) {
	n, err := h.Store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, note.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
		} else {
			http.Error(w, "server error", http.StatusInternalServerError)
		}
		return nil, err
	}
	return n, nil
}

func noteID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
