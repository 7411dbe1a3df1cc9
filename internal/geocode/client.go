// Package geocode wraps the external free-text-to-coordinate lookup.
// The call is best-effort with a bounded timeout and no retry; a failure
// here must never stall or fail the search pipeline.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/logger"
)

// Client resolves free text to the single best coordinate candidate.
type Client struct {
	baseURL      string
	countryCodes string
	userAgent    string
	client       *http.Client
	log          *logger.Logger
}

// NewClient creates a geocoding client from config. The HTTP client carries
// the configured timeout so a hung provider cannot stall a request beyond it.
func NewClient(cfg config.GeocodeConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:      cfg.GetGeocodeBaseURL(),
		countryCodes: cfg.GetGeocodeCountryCodes(),
		userAgent:    cfg.GetGeocodeUserAgent(),
		client:       &http.Client{Timeout: cfg.GetGeocodeTimeout()},
		log:          log,
	}
}

// Resolve asks the provider for the single best match of query. Exactly one
// attempt is made. The returned Outcome is always usable: Unavailable
// outcomes carry the underlying error for logging, never for surfacing.
func (c *Client) Resolve(ctx context.Context, query string) Outcome {
	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("limit", "1")
	if c.countryCodes != "" {
		params.Add("countrycodes", c.countryCodes)
	}

	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	// Always a fresh lookup; intermediaries must not replay a stale answer.
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("geocode request failed", "error", err)
		return Outcome{Status: StatusUnavailable, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("upstream api error: %d", resp.StatusCode)
		c.log.Error("geocode upstream error", "status", resp.StatusCode)
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	var rawResults []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&rawResults); err != nil {
		c.log.Error("failed to decode geocode payload", "error", err)
		return Outcome{Status: StatusUnavailable, Err: err}
	}

	if len(rawResults) == 0 {
		return Outcome{Status: StatusNoMatch}
	}

	candidate, ok := buildCandidate(rawResults[0])
	if !ok {
		return Outcome{Status: StatusNoMatch}
	}

	return Outcome{Status: StatusResolved, Candidate: candidate}
}

func buildCandidate(raw nominatimResult) (Candidate, bool) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil {
		return Candidate{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil {
		return Candidate{}, false
	}

	return Candidate{
		Latitude:    lat,
		Longitude:   lon,
		DisplayName: raw.DisplayName,
	}, true
}
