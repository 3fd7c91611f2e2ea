package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NoGeocoder is used when no geocoding endpoint is configured; every
// lookup fails and the selector falls back to the synthesized name.
type NoGeocoder struct{}

func (NoGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	return "", fmt.Errorf("no geocoder configured")
}

// HTTPGeocoder reverse-geocodes against a Nominatim-compatible endpoint.
type HTTPGeocoder struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewHTTPGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *HTTPGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))
	q.Set("format", "jsonv2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := g.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned %s", resp.Status)
	}

	var out struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if out.DisplayName == "" {
		return "", fmt.Errorf("no address for %.5f,%.5f", lat, lng)
	}
	return out.DisplayName, nil
}
