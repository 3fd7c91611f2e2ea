package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nearnote/internal/geofence"
	"nearnote/internal/note"
	"nearnote/internal/notesync"
)

func newNoteRouter(t *testing.T) (http.Handler, *geofence.FakeRegistry) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notes.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&note.Note{}))

	store := note.NewStore(gdb)
	reg := geofence.NewFakeRegistry()
	h := &NoteHandler{Ctl: &notesync.Controller{Store: store, Registry: reg}, Store: store}

	r := chi.NewRouter()
	r.Post("/notes", h.Create)
	r.Get("/notes", h.List)
	r.Get("/notes/{id}", h.Get)
	r.Put("/notes/{id}", h.Update)
	r.Delete("/notes/{id}", h.Delete)
	return r, reg
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateNote(t *testing.T) {
	r, reg := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]any{
		"title":     "Pharmacy",
		"latitude":  46.52,
		"longitude": 6.63,
		"radius":    50,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)

	regions := reg.Regions()
	require.Len(t, regions, 1)
	_, ok := regions[geofence.RequestID(created.ID)]
	assert.True(t, ok)
}

func TestCreateNoteRequiresTitle(t *testing.T) {
	r, _ := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]any{"title": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNoteDefaultsRadius(t *testing.T) {
	r, _ := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]any{
		"title": "t", "latitude": 1.0, "longitude": 1.0,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, note.DefaultRadius, created.Radius)
}

func TestUpdateNote(t *testing.T) {
	r, reg := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]any{
		"title": "t", "latitude": 1.0, "longitude": 1.0,
	})
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	inactive := false
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/notes/%d", created.ID), map[string]any{
		"title": "t", "latitude": 1.0, "longitude": 1.0, "is_active": inactive,
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, reg.Regions())
}

func TestUpdateMissingNote(t *testing.T) {
	r, _ := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPut, "/notes/99", map[string]any{"title": "t"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteNote(t *testing.T) {
	r, reg := newNoteRouter(t)

	w := doJSON(t, r, http.MethodPost, "/notes", map[string]any{
		"title": "t", "latitude": 1.0, "longitude": 1.0,
	})
	var created note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/notes/%d", created.ID), nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, reg.Regions())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/notes/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListNewestFirst(t *testing.T) {
	r, _ := newNoteRouter(t)

	for _, title := range []string{"first", "second"} {
		doJSON(t, r, http.MethodPost, "/notes", map[string]any{"title": title})
	}

	w := doJSON(t, r, http.MethodGet, "/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []note.Note
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Title)
}
