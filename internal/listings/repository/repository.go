package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"rental_portal_backend/internal/listings/domain"
)

const listingColumns = `id, title, description, property_type, state, city, locality,
		latitude, longitude, variants, amenities, available, contact_name, contact_phone, created_at`

// Repo implements the listings repository over pgx.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new listings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// ListFiltered serves the structured-filter path, including the text
// fallback predicate when params.Query is set.
func (r *Repo) ListFiltered(ctx context.Context, params ListParams) ([]domain.ListingSummary, error) {
	whereClauses := []string{"available = true"}
	args := []interface{}{}
	argIdx := 1

	if params.Query != "" {
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+params.Query+"%")
		argIdx++
	}
	if params.MinPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("min_price >= $%d", argIdx))
		args = append(args, *params.MinPrice)
		argIdx++
	}
	if params.MaxPrice != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("min_price <= $%d", argIdx))
		args = append(args, *params.MaxPrice)
		argIdx++
	}
	if params.PropertyType != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("property_type = $%d", argIdx))
		args = append(args, string(params.PropertyType))
		argIdx++
	}
	if len(params.Amenities) > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("amenities @> $%d", argIdx))
		args = append(args, params.Amenities)
		argIdx++
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 24
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE %s
		ORDER BY %s
		LIMIT $%d`,
		listingColumns,
		strings.Join(whereClauses, " AND "),
		orderClause(params.SortKey, params.Reverse),
		argIdx,
	)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list filtered listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// MatchLocation serves the column-match tier.
func (r *Repo) MatchLocation(ctx context.Context, needle string) ([]domain.ListingSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE available = true
			AND (state ILIKE $1 OR city ILIKE $1 OR locality ILIKE $1)
		ORDER BY created_at DESC`, listingColumns)

	rows, err := r.pool.Query(ctx, query, "%"+needle+"%")
	if err != nil {
		return nil, fmt.Errorf("match location columns: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// WithinRadius invokes the stored radius function. The function owns the
// distance math; this side only passes the center and radius in meters.
func (r *Repo) WithinRadius(ctx context.Context, lat, lng, radiusMeters float64) ([]domain.ListingSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM listings_within_radius($1, $2, $3)
		ORDER BY created_at DESC`, listingColumns)

	rows, err := r.pool.Query(ctx, query, lat, lng, radiusMeters)
	if err != nil {
		return nil, fmt.Errorf("listings within radius: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// AggregateAreas buckets radius results by locality for the areas mode.
func (r *Repo) AggregateAreas(ctx context.Context, lat, lng, radiusMeters float64, cap int) ([]AreaCount, error) {
	if cap <= 0 {
		cap = 10
	}

	query := `
		SELECT COALESCE(NULLIF(locality, ''), city) AS name, city, COUNT(*) AS count
		FROM listings_within_radius($1, $2, $3)
		GROUP BY COALESCE(NULLIF(locality, ''), city), city
		ORDER BY count DESC, name ASC
		LIMIT $4`

	rows, err := r.pool.Query(ctx, query, lat, lng, radiusMeters, cap)
	if err != nil {
		return nil, fmt.Errorf("aggregate areas: %w", err)
	}
	defer rows.Close()

	areas := make([]AreaCount, 0, cap)
	for rows.Next() {
		var area AreaCount
		if err := rows.Scan(&area.Name, &area.City, &area.Count); err != nil {
			return nil, fmt.Errorf("scan area aggregate: %w", err)
		}
		areas = append(areas, area)
	}
	return areas, rows.Err()
}

// ListAvailable returns the capped hot list backing the cached GET path.
func (r *Repo) ListAvailable(ctx context.Context, cap int) ([]domain.ListingSummary, error) {
	if cap <= 0 {
		cap = 50
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM listings
		WHERE available = true
		ORDER BY created_at DESC
		LIMIT $1`, listingColumns)

	rows, err := r.pool.Query(ctx, query, cap)
	if err != nil {
		return nil, fmt.Errorf("list available listings: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func orderClause(key domain.SortKey, reverse bool) string {
	switch key {
	case domain.SortPrice:
		if reverse {
			return "min_price DESC"
		}
		return "min_price ASC"
	case domain.SortCreatedAt, domain.SortRelevance, "":
		// RELEVANCE degrades to recency; there is no scoring on this path.
		if reverse {
			return "created_at ASC"
		}
		return "created_at DESC"
	default:
		return "created_at DESC"
	}
}

func scanListings(rows pgx.Rows) ([]domain.ListingSummary, error) {
	listings := make([]domain.ListingSummary, 0)
	for rows.Next() {
		var l domain.ListingSummary
		var variantsRaw []byte
		if err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.PropertyType, &l.State, &l.City, &l.Locality,
			&l.Latitude, &l.Longitude, &variantsRaw, &l.Amenities, &l.Available,
			&l.ContactName, &l.ContactPhone, &l.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		if len(variantsRaw) > 0 {
			if err := json.Unmarshal(variantsRaw, &l.Variants); err != nil {
				return nil, fmt.Errorf("decode listing variants: %w", err)
			}
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
