package trigger

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"nearnote/internal/geofence"
	"nearnote/internal/note"
	"nearnote/internal/notify"
)

type spyNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (s *spyNotifier) Notify(ctx context.Context, n notify.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, n)
	return nil
}

func (s *spyNotifier) all() []notify.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]notify.Notification(nil), s.sent...)
}

func newHandler(t *testing.T) (*Handler, *note.Store, *spyNotifier) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "notes.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&note.Note{}))

	store := note.NewStore(gdb)
	spy := &spyNotifier{}
	return &Handler{Store: store, Notifier: spy}, store, spy
}

func enterEvent(requestID string) geofence.Event {
	return geofence.Event{Transitions: []geofence.Transition{
		{RequestID: requestID, Kind: geofence.TransitionEnter},
	}}
}

func TestEnterEmitsNotification(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "Buy aspirin", Text: "the **good** kind", LocationName: "Pharmacy", Latitude: 46.52, Longitude: 6.63, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))

	h.Handle(ctx, enterEvent(geofence.RequestID(n.ID)))

	sent := spy.all()
	require.Len(t, sent, 1)
	assert.Equal(t, "Near Pharmacy", sent[0].Title)
	assert.Equal(t, "Buy aspirin", sent[0].Message)
	assert.Equal(t, n.ID, sent[0].NoteID)
	assert.Equal(t, notify.StableID(n.ID), sent[0].ID)
}

func TestDwellEmitsNotification(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "t", LocationName: "Home", Latitude: 1, Longitude: 1, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))

	h.Handle(ctx, geofence.Event{Transitions: []geofence.Transition{
		{RequestID: geofence.RequestID(n.ID), Kind: geofence.TransitionDwell},
	}})

	assert.Len(t, spy.all(), 1)
}

func TestDeletedNoteSuppressed(t *testing.T) {
	h, _, spy := newHandler(t)

	// region fires for note 42 which no longer exists
	h.Handle(context.Background(), enterEvent("42"))

	assert.Empty(t, spy.all())
}

func TestInactiveNoteSuppressed(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "t", Latitude: 1, Longitude: 1, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))
	n.IsActive = false
	require.NoError(t, store.Update(ctx, n))

	h.Handle(ctx, enterEvent(geofence.RequestID(n.ID)))

	assert.Empty(t, spy.all())
}

func TestExitEmitsNothing(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "t", Latitude: 1, Longitude: 1, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))

	h.Handle(ctx, geofence.Event{Transitions: []geofence.Transition{
		{RequestID: geofence.RequestID(n.ID), Kind: geofence.TransitionExit},
	}})

	assert.Empty(t, spy.all())
}

func TestErrorEventStopsProcessing(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "t", Latitude: 1, Longitude: 1, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))

	h.Handle(ctx, geofence.Event{
		ErrorCode: "GEOFENCE_NOT_AVAILABLE",
		Transitions: []geofence.Transition{
			{RequestID: geofence.RequestID(n.ID), Kind: geofence.TransitionEnter},
		},
	})

	assert.Empty(t, spy.all())
}

func TestMalformedIDDoesNotAbortSiblings(t *testing.T) {
	h, store, spy := newHandler(t)
	ctx := context.Background()

	n := &note.Note{Title: "t", LocationName: "Work", Latitude: 1, Longitude: 1, IsActive: true}
	require.NoError(t, store.Insert(ctx, n))

	h.Handle(ctx, geofence.Event{Transitions: []geofence.Transition{
		{RequestID: "not-a-number", Kind: geofence.TransitionEnter},
		{RequestID: geofence.RequestID(n.ID), Kind: geofence.TransitionEnter},
	}})

	sent := spy.all()
	require.Len(t, sent, 1)
	assert.Equal(t, n.ID, sent[0].NoteID)
}
