package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/yuin/goldmark"
)

// WebhookNotifier posts notifications to an external presenter. The note
// text travels as rendered HTML; the tap URL deep-links back into the UI
// scoped to the triggering note.
type WebhookNotifier struct {
	URL        string
	TapBaseURL string
	HTTPClient *http.Client

	md goldmark.Markdown
}

func NewWebhookNotifier(url, tapBaseURL string) *WebhookNotifier {
	return &WebhookNotifier{
		URL:        url,
		TapBaseURL: tapBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
		md:         goldmark.New(),
	}
}

type webhookPayload struct {
	Notification
	BodyHTML string `json:"body_html,omitempty"`
	TapURL   string `json:"tap_url"`
}

func (w *WebhookNotifier) Notify(ctx context.Context, n Notification) error {
	p := webhookPayload{
		Notification: n,
		TapURL:       fmt.Sprintf("%s/notes/%d", w.TapBaseURL, n.NoteID),
	}
	if n.Body != "" {
		var buf bytes.Buffer
		if err := w.md.Convert([]byte(n.Body), &buf); err == nil {
			p.BodyHTML = buf.String()
		}
	}

	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification webhook returned %s", resp.Status)
	}
	return nil
}
