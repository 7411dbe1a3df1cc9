// Package service implements the three-tier search resolution engine: a
// column match against structured location fields, a geocode-plus-radius
// spatial match, and a free-text fallback, evaluated in strict priority
// order with first success winning.
package service

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"rental_portal_backend/internal/geocode"
	"rental_portal_backend/internal/listings/domain"
	"rental_portal_backend/internal/listings/repository"
	"rental_portal_backend/internal/listings/transport"
	"rental_portal_backend/platform/apperr"
	"rental_portal_backend/platform/cache"
	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/logger"
)

// Geocoder resolves free text to a coordinate. Satisfied by *geocode.Client.
type Geocoder interface {
	Resolve(ctx context.Context, query string) geocode.Outcome
}

// Tier names the resolution strategy that produced a result, so callers and
// tests can assert which branch fired.
type Tier string

const (
	// TierFilter is the no-query structured-filter path.
	TierFilter Tier = "filter"
	// TierColumn is the structured location column match.
	TierColumn Tier = "column"
	// TierSpatial is the geocoded radius match.
	TierSpatial Tier = "spatial"
	// TierText is the title/description substring fallback.
	TierText Tier = "text"
)

// Result is a resolved, ordered result set tagged with its tier.
type Result struct {
	Listings    []domain.ListingSummary
	ResolvedVia Tier
}

// hotListCacheKey is the single well-known key for the unfiltered,
// unparameterized listing endpoint.
const hotListCacheKey = "listings:hot"

// Service is the resolution orchestrator. All shared mutable state lives in
// the injected cache store; the service itself is safe for concurrent use.
type Service struct {
	repo     repository.Repository
	geo      Geocoder
	store    cache.Store
	group    singleflight.Group
	radiusKM float64
	cacheTTL time.Duration
	listCap  int
	log      *logger.Logger
}

// New creates the search service.
func New(repo repository.Repository, geo Geocoder, store cache.Store, cfg config.SearchConfig, log *logger.Logger) *Service {
	radius := cfg.GetSearchRadiusKM()
	if radius <= 0 {
		radius = 20
	}
	ttl := cfg.GetListCacheTTL()
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	cap := cfg.GetListCacheCap()
	if cap <= 0 {
		cap = 50
	}

	return &Service{
		repo:     repo,
		geo:      geo,
		store:    store,
		radiusKM: radius,
		cacheTTL: ttl,
		listCap:  cap,
		log:      log,
	}
}

// Search runs the resolution state machine for a validated query.
//
// Tier order is strict and short-circuiting: a column match never consults
// the geocoder, and a successfully resolved place is authoritative even when
// its radius holds no listings. Only a geocoding miss or outage reaches the
// text fallback.
func (s *Service) Search(ctx context.Context, q Query) (Result, error) {
	text := normalizeQuery(q.Text)

	if text == "" {
		listings, err := s.repo.ListFiltered(ctx, s.listParams(q, ""))
		if err != nil {
			s.log.DatabaseError("listings.list_filtered", err)
			return Result{}, apperr.Upstream("listing store unavailable", err)
		}
		return Result{Listings: listings, ResolvedVia: TierFilter}, nil
	}

	matches, err := s.repo.MatchLocation(ctx, text)
	if err != nil {
		s.log.DatabaseError("listings.match_location", err)
		return Result{}, apperr.Upstream("listing store unavailable", err)
	}
	if len(matches) > 0 {
		return Result{Listings: s.priceFilter(matches, q), ResolvedVia: TierColumn}, nil
	}

	outcome := s.geo.Resolve(ctx, text)
	switch outcome.Status {
	case geocode.StatusResolved:
		within, err := s.repo.WithinRadius(ctx,
			outcome.Candidate.Latitude, outcome.Candidate.Longitude, s.radiusKM*1000)
		if err != nil {
			// A missing or broken radius procedure degrades to the text
			// tier instead of failing the request.
			s.log.DatabaseError("listings.within_radius", err)
		} else {
			// Empty is a valid final answer: the place resolved, nothing is
			// listed near it. Falling through here would surface unrelated
			// keyword matches for a confidently known location.
			return Result{Listings: s.priceFilter(within, q), ResolvedVia: TierSpatial}, nil
		}
	case geocode.StatusNoMatch:
		s.log.GeocodeFallback(text, "no_match", nil)
	case geocode.StatusUnavailable:
		s.log.GeocodeFallback(text, "unavailable", outcome.Err)
	}

	listings, err := s.repo.ListFiltered(ctx, s.listParams(q, text))
	if err != nil {
		s.log.DatabaseError("listings.list_filtered", err)
		return Result{}, apperr.Upstream("listing store unavailable", err)
	}
	return Result{Listings: listings, ResolvedVia: TierText}, nil
}

// Nearby returns listings within radiusKM of a coordinate.
func (s *Service) Nearby(ctx context.Context, lat, lng, radiusKM float64) ([]domain.ListingSummary, error) {
	if radiusKM <= 0 {
		radiusKM = s.radiusKM
	}
	listings, err := s.repo.WithinRadius(ctx, lat, lng, radiusKM*1000)
	if err != nil {
		s.log.DatabaseError("listings.within_radius", err)
		return nil, apperr.Upstream("listing store unavailable", err)
	}
	return listings, nil
}

// areaCap bounds the areas-mode aggregation.
const areaCap = 10

// Areas aggregates listings around a coordinate by locality.
func (s *Service) Areas(ctx context.Context, lat, lng, radiusKM float64) ([]transport.AreaAggregate, error) {
	if radiusKM <= 0 {
		radiusKM = s.radiusKM
	}
	counts, err := s.repo.AggregateAreas(ctx, lat, lng, radiusKM*1000, areaCap)
	if err != nil {
		s.log.DatabaseError("listings.aggregate_areas", err)
		return nil, apperr.Upstream("listing store unavailable", err)
	}

	areas := make([]transport.AreaAggregate, len(counts))
	for i, count := range counts {
		areas[i] = transport.AreaAggregate{Name: count.Name, City: count.City, Count: count.Count}
	}
	return areas, nil
}

// HotList returns the marshaled capped list of available listings, served
// from cache within the TTL. Concurrent misses collapse into a single store
// round-trip. The payload is returned as raw JSON so replays within the TTL
// are byte-identical.
func (s *Service) HotList(ctx context.Context) ([]byte, error) {
	if payload, ok := s.store.Get(ctx, hotListCacheKey); ok {
		s.log.CacheEvent(hotListCacheKey, "hit")
		return payload, nil
	}

	payload, err, _ := s.group.Do(hotListCacheKey, func() (interface{}, error) {
		s.log.CacheEvent(hotListCacheKey, "miss")
		return s.refreshHotList(ctx)
	})
	if err != nil {
		return nil, err
	}
	return payload.([]byte), nil
}

// WarmHotList refreshes the hot list cache unconditionally. Called by the
// scheduler so the first post-expiry reader rarely pays the round-trip;
// lazy expiry remains authoritative without it.
func (s *Service) WarmHotList(ctx context.Context) error {
	_, err := s.refreshHotList(ctx)
	return err
}

func (s *Service) refreshHotList(ctx context.Context) ([]byte, error) {
	listings, err := s.repo.ListAvailable(ctx, s.listCap)
	if err != nil {
		s.log.DatabaseError("listings.list_available", err)
		return nil, apperr.Upstream("listing store unavailable", err)
	}

	payload, err := json.Marshal(transport.ToResponses(listings))
	if err != nil {
		return nil, apperr.Internal("failed to encode listings")
	}

	s.store.Set(ctx, hotListCacheKey, payload, s.cacheTTL)
	s.log.CacheEvent(hotListCacheKey, "refresh")
	return payload, nil
}

// priceFilter applies the numeric bounds in memory for the tiers that
// bypass the database-level price predicate. It must stay equivalent to the
// SQL `min_price >= min AND min_price <= max` predicate.
func (s *Service) priceFilter(listings []domain.ListingSummary, q Query) []domain.ListingSummary {
	if q.MinPrice == nil && q.MaxPrice == nil {
		return listings
	}

	kept := make([]domain.ListingSummary, 0, len(listings))
	for _, l := range listings {
		price := l.MinPrice()
		if q.MinPrice != nil && price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && price > *q.MaxPrice {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

func (s *Service) listParams(q Query, text string) repository.ListParams {
	return repository.ListParams{
		Query:        text,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		PropertyType: q.PropertyType,
		Amenities:    q.Amenities,
		SortKey:      q.SortKey,
		Reverse:      q.Reverse,
		Limit:        q.Limit,
	}
}
