package service

import (
	"strings"
	"testing"

	"rental_portal_backend/internal/listings/domain"
	"rental_portal_backend/internal/listings/transport"
	"rental_portal_backend/platform/apperr"
	"rental_portal_backend/platform/validator"
)

func TestBuildQuery_Defaults(t *testing.T) {
	q, err := BuildQuery(transport.SearchRequest{Query: "Mandsaur"}, validator.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Mandsaur" {
		t.Errorf("expected query text kept, got %q", q.Text)
	}
	if q.Limit != transport.DefaultLimit {
		t.Errorf("expected default limit %d, got %d", transport.DefaultLimit, q.Limit)
	}
	if q.SortKey != domain.SortCreatedAt {
		t.Errorf("expected default sort by recency, got %s", q.SortKey)
	}
}

func TestBuildQuery_UnsafeQueryRejectedWithSecurityAlert(t *testing.T) {
	_, err := BuildQuery(transport.SearchRequest{Query: "<script>alert(1)</script>"}, validator.New())
	if err == nil {
		t.Fatal("expected rejection of script payload")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error kind, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), securityAlertPrefix) {
		t.Fatalf("expected security alert message, got %q", err.Error())
	}
}

func TestBuildQuery_UnsafeAmenityRejected(t *testing.T) {
	req := transport.SearchRequest{Amenities: []string{"wifi", "<script>x</script>"}}
	_, err := BuildQuery(req, validator.New())
	if err == nil {
		t.Fatal("expected rejection of unsafe amenity")
	}
	if !strings.HasPrefix(err.Error(), securityAlertPrefix) {
		t.Fatalf("expected security alert message, got %q", err.Error())
	}
}

func TestBuildQuery_EmbeddedMarkupIsNeutralized(t *testing.T) {
	// Payloads that pass the kind check but still carry markup are
	// sanitized, not rejected.
	q, err := BuildQuery(transport.SearchRequest{Query: `Mandsaur <iframe src="x"></iframe>`}, validator.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(strings.ToLower(q.Text), "iframe") {
		t.Fatalf("expected iframe removed, got %q", q.Text)
	}
}

func TestBuildQuery_PriceBounds(t *testing.T) {
	min, max := 20000.0, 10000.0
	_, err := BuildQuery(transport.SearchRequest{MinPrice: &min, MaxPrice: &max}, validator.New())
	if err == nil {
		t.Fatal("expected rejection when minPrice exceeds maxPrice")
	}
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error kind, got %v", err)
	}

	min, max = 5000.0, 15000.0
	q, err := BuildQuery(transport.SearchRequest{MinPrice: &min, MaxPrice: &max}, validator.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *q.MinPrice != 5000 || *q.MaxPrice != 15000 {
		t.Fatalf("expected bounds carried over, got (%v, %v)", *q.MinPrice, *q.MaxPrice)
	}
}

func TestBuildQuery_NegativePriceRejected(t *testing.T) {
	min := -100.0
	_, err := BuildQuery(transport.SearchRequest{MinPrice: &min}, validator.New())
	if err == nil {
		t.Fatal("expected rejection of negative price")
	}
}

func TestBuildQuery_UnknownEnumsRejected(t *testing.T) {
	if _, err := BuildQuery(transport.SearchRequest{SortKey: "rating"}, validator.New()); err == nil {
		t.Fatal("expected rejection of unknown sortKey")
	}
	if _, err := BuildQuery(transport.SearchRequest{PropertyType: "castle"}, validator.New()); err == nil {
		t.Fatal("expected rejection of unknown propertyType")
	}
}

func TestBuildQuery_LocationIsFallbackText(t *testing.T) {
	q, err := BuildQuery(transport.SearchRequest{Location: "Indore"}, validator.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Indore" {
		t.Fatalf("expected location used when query empty, got %q", q.Text)
	}

	q, err = BuildQuery(transport.SearchRequest{Query: "Mandsaur", Location: "Indore"}, validator.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text != "Mandsaur" {
		t.Fatalf("expected query to win over location, got %q", q.Text)
	}
}

func TestBuildQuery_OverlongQueryRejected(t *testing.T) {
	_, err := BuildQuery(transport.SearchRequest{Query: strings.Repeat("a", 1001)}, validator.New())
	if err == nil {
		t.Fatal("expected rejection of overlong query")
	}
}

func TestNormalizeQuery(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Mandsaur", "Mandsaur"},
		{"collapses whitespace", "  New   Abadi  ", "New Abadi"},
		{"keeps benign punctuation", "Station Road, Mandsaur", "Station Road, Mandsaur"},
		{"drops sql punctuation", "x'; --", "x --"},
		{"drops percent and underscore", "100%_match", "100match"},
		{"non-ascii passes through", "मंदसौर", "मंदसौर"},
		{"encoded apostrophe stripped whole", "D&#x27;Souza Nagar", "DSouza Nagar"},
		{"encoded brackets stripped whole", "&lt;Mandsaur&gt;", "Mandsaur"},
		{"encoded quote stripped whole", "&quot;New Abadi&quot;", "New Abadi"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := normalizeQuery(tc.input); got != tc.want {
				t.Errorf("normalizeQuery(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
