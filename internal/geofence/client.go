package geofence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"nearnote/internal/note"
)

// Client talks to the region-monitor daemon over HTTP. The callback URL is
// the shared delivery token: every region this agent registers is tagged
// with it, and "remove all" means "everything tagged with my callback".
//
// Calls complete in the background; the caller never observes the result.
type Client struct {
	BaseURL     string
	CallbackURL string
	HTTPClient  *http.Client
	Perms       Permissions
}

func NewClient(baseURL, callbackURL string, perms Permissions) *Client {
	return &Client{
		BaseURL:     baseURL,
		CallbackURL: callbackURL,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		Perms:       perms,
	}
}

type registerRequest struct {
	CallbackURL string   `json:"callback_url"`
	Regions     []Region `json:"regions"`
}

type removeRequest struct {
	CallbackURL string   `json:"callback_url,omitempty"`
	RequestIDs  []string `json:"request_ids,omitempty"`
}

func (c *Client) AddRegions(ctx context.Context, notes []note.Note) {
	regions := make([]Region, 0, len(notes))
	for _, n := range notes {
		if n.Geofenceable() {
			regions = append(regions, RegionForNote(n))
		}
	}
	if len(regions) == 0 {
		log.Printf("geofence: no geofenceable notes to register, clearing all regions")
		c.RemoveAllRegions(ctx)
		return
	}

	if !c.Perms.LocationGranted() {
		log.Printf("geofence: cannot register regions, location permission not granted")
		return
	}

	c.submit(ctx, "/v1/regions", registerRequest{
		CallbackURL: c.CallbackURL,
		Regions:     regions,
	}, fmt.Sprintf("register %d region(s)", len(regions)))
}

func (c *Client) RemoveRegionsByIDs(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	c.submit(ctx, "/v1/regions/remove", removeRequest{RequestIDs: ids},
		fmt.Sprintf("remove regions %v", ids))
}

func (c *Client) RemoveAllRegions(ctx context.Context) {
	c.submit(ctx, "/v1/regions/remove", removeRequest{CallbackURL: c.CallbackURL},
		"remove all regions")
}

// submit fires the request in the background, detached from the caller's
// cancellation: controller operations must not abort an in-flight
// registration when their request scope ends.
func (c *Client) submit(ctx context.Context, path string, body any, desc string) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		if err := c.post(ctx, path, body); err != nil {
			log.Printf("geofence: failed to %s: %v", desc, err)
			return
		}
		log.Printf("geofence: %s ok", desc)
	}()
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("monitor returned %s", resp.Status)
	}
	return nil
}
