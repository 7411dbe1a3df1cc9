package repository

import (
	"context"

	"rental_portal_backend/internal/listings/domain"
)

// ListParams drives the structured-filter list path. Query, when set, adds
// the title/description substring predicate; price bounds are applied at the
// database level on this path only.
type ListParams struct {
	Query        string
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType domain.PropertyType
	Amenities    []string
	SortKey      domain.SortKey
	Reverse      bool
	Limit        int
}

// Repository is the persistent-store contract the orchestrator depends on.
// The store owns the listings table and the radius search procedure; this
// interface only reads.
type Repository interface {
	// ListFiltered serves the no-query and text-fallback tiers.
	ListFiltered(ctx context.Context, params ListParams) ([]domain.ListingSummary, error)
	// MatchLocation returns available listings whose state, city or locality
	// contains needle, case-insensitively.
	MatchLocation(ctx context.Context, needle string) ([]domain.ListingSummary, error)
	// WithinRadius invokes the radius stored function around a center point.
	WithinRadius(ctx context.Context, lat, lng, radiusMeters float64) ([]domain.ListingSummary, error)
	// AggregateAreas buckets listings around a center point by locality.
	AggregateAreas(ctx context.Context, lat, lng, radiusMeters float64, cap int) ([]AreaCount, error)
	// ListAvailable returns up to cap available listings, newest first.
	ListAvailable(ctx context.Context, cap int) ([]domain.ListingSummary, error)
}

// AreaCount is one locality aggregation row.
type AreaCount struct {
	Name  string
	City  string
	Count int
}
