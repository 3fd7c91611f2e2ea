package notify

import (
	"context"
	"log"
)

// notificationIDOffset keeps notification ids clear of small note ids.
const notificationIDOffset = 1000

// Notification is the one-shot side effect emitted when the device enters
// a note's region. ID is stable per note so a repeated entry replaces the
// previous notification instead of stacking.
type Notification struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Body    string `json:"-"` // note text, markdown
	NoteID  int64  `json:"note_id"`
}

// StableID derives the replace-not-stack notification id for a note.
func StableID(noteID int64) int64 {
	return noteID + notificationIDOffset
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier is the fallback sink when no webhook is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, n Notification) error {
	log.Printf("[NOTIFY] id=%d note=%d %s: %s", n.ID, n.NoteID, n.Title, n.Message)
	return nil
}
