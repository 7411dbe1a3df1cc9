package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rental_portal_backend/platform/logger"
)

type stubConfig struct {
	baseURL string
	timeout time.Duration
}

func (c stubConfig) GetGeocodeBaseURL() string        { return c.baseURL }
func (c stubConfig) GetGeocodeTimeout() time.Duration { return c.timeout }
func (c stubConfig) GetGeocodeCountryCodes() string   { return "in" }
func (c stubConfig) GetGeocodeUserAgent() string      { return "rental-portal-test" }

func newTestClient(baseURL string) *Client {
	return NewClient(stubConfig{baseURL: baseURL, timeout: 2 * time.Second}, logger.New("test"))
}

func TestResolve_ReturnsBestCandidate(t *testing.T) {
	var gotQuery, gotCodes, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotCodes = r.URL.Query().Get("countrycodes")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"display_name":"Mandsaur, Madhya Pradesh, India","lat":"24.0768","lon":"75.0704"}]`))
	}))
	defer srv.Close()

	outcome := newTestClient(srv.URL).Resolve(context.Background(), "Mandsaur")

	if outcome.Status != StatusResolved {
		t.Fatalf("expected resolved, got %v (err: %v)", outcome.Status, outcome.Err)
	}
	if outcome.Candidate.Latitude != 24.0768 || outcome.Candidate.Longitude != 75.0704 {
		t.Fatalf("expected parsed coordinates, got %+v", outcome.Candidate)
	}
	if outcome.Candidate.DisplayName != "Mandsaur, Madhya Pradesh, India" {
		t.Fatalf("unexpected display name %q", outcome.Candidate.DisplayName)
	}
	if gotQuery != "Mandsaur" || gotCodes != "in" || gotLimit != "1" {
		t.Fatalf("unexpected request params: q=%q countrycodes=%q limit=%q", gotQuery, gotCodes, gotLimit)
	}
}

func TestResolve_EmptyResultIsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	outcome := newTestClient(srv.URL).Resolve(context.Background(), "xyzzy nowhere")

	if outcome.Status != StatusNoMatch {
		t.Fatalf("expected no match, got %v", outcome.Status)
	}
	if outcome.Err != nil {
		t.Fatalf("no match must not carry an error, got %v", outcome.Err)
	}
}

func TestResolve_MalformedCoordinatesAreNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"display_name":"x","lat":"north","lon":"west"}]`))
	}))
	defer srv.Close()

	outcome := newTestClient(srv.URL).Resolve(context.Background(), "somewhere")

	if outcome.Status != StatusNoMatch {
		t.Fatalf("expected no match for unparseable coordinates, got %v", outcome.Status)
	}
}

func TestResolve_UpstreamErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	outcome := newTestClient(srv.URL).Resolve(context.Background(), "Mandsaur")

	if outcome.Status != StatusUnavailable {
		t.Fatalf("expected unavailable, got %v", outcome.Status)
	}
	if outcome.Err == nil {
		t.Fatal("expected unavailable outcome to carry the underlying error")
	}
}

func TestResolve_TimeoutIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(stubConfig{baseURL: srv.URL, timeout: 50 * time.Millisecond}, logger.New("test"))
	outcome := client.Resolve(context.Background(), "Mandsaur")

	if outcome.Status != StatusUnavailable {
		t.Fatalf("expected unavailable on timeout, got %v", outcome.Status)
	}
	if outcome.Err == nil {
		t.Fatal("expected timeout error attached to outcome")
	}
}

func TestResolve_UnreachableHostIsUnavailable(t *testing.T) {
	// Closed-port endpoint: the dial fails immediately.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	outcome := newTestClient(addr).Resolve(context.Background(), "Mandsaur")

	if outcome.Status != StatusUnavailable {
		t.Fatalf("expected unavailable for unreachable host, got %v", outcome.Status)
	}
}
