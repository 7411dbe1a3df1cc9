package service

import (
	"strings"

	"rental_portal_backend/internal/listings/domain"
	"rental_portal_backend/internal/listings/transport"
	"rental_portal_backend/platform/apperr"
	"rental_portal_backend/platform/sanitize"
	"rental_portal_backend/platform/validator"
)

// securityAlertPrefix marks validation failures caused by unsafe input, a
// message shape the frontend already understands.
const securityAlertPrefix = "Security Alert: "

// Query is the immutable, validated form of a search request. Construct one
// through BuildQuery; nothing downstream re-validates.
type Query struct {
	Text         string
	Limit        int
	SortKey      domain.SortKey
	Reverse      bool
	MinPrice     *float64
	MaxPrice     *float64
	PropertyType domain.PropertyType
	Amenities    []string
}

// BuildQuery validates and sanitizes a boundary request into a Query.
// Every free-text field is sanitized before it can reach a downstream
// lookup; enum and numeric fields must conform or the request aborts with a
// validation error.
func BuildQuery(req transport.SearchRequest, val *validator.Validator) (Query, error) {
	if err := val.Struct(req); err != nil {
		return Query{}, apperr.Validation("invalid search request").WithDetails(err.Error())
	}

	if !val.ValidateKind(req.Query, validator.KindString) {
		return Query{}, apperr.Validation(securityAlertPrefix + "unsafe query text")
	}
	if !val.ValidateKind(req.Location, validator.KindString) {
		return Query{}, apperr.Validation(securityAlertPrefix + "unsafe location text")
	}
	for _, amenity := range req.Amenities {
		if !val.ValidateKind(amenity, validator.KindString) {
			return Query{}, apperr.Validation(securityAlertPrefix + "unsafe amenity value")
		}
	}
	if req.MinPrice != nil && !val.ValidateKind(*req.MinPrice, validator.KindNumber) {
		return Query{}, apperr.Validation("minPrice must be a finite number")
	}
	if req.MaxPrice != nil && !val.ValidateKind(*req.MaxPrice, validator.KindNumber) {
		return Query{}, apperr.Validation("maxPrice must be a finite number")
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		return Query{}, apperr.Validation("minPrice cannot exceed maxPrice")
	}

	sortKey := domain.SortCreatedAt
	if req.SortKey != "" {
		parsed, ok := domain.ParseSortKey(req.SortKey)
		if !ok {
			return Query{}, apperr.Validation("unknown sortKey")
		}
		sortKey = parsed
	}

	var propertyType domain.PropertyType
	if req.PropertyType != "" {
		parsed, ok := domain.ParsePropertyType(req.PropertyType)
		if !ok {
			return Query{}, apperr.Validation("unknown propertyType")
		}
		propertyType = parsed
	}

	limit := req.Limit
	if limit <= 0 {
		limit = transport.DefaultLimit
	}

	// The query names the place or keywords to resolve; location is the
	// structured fallback used when no free-text query was typed.
	text := sanitize.Text(req.Query)
	if text == "" {
		text = sanitize.Text(req.Location)
	}

	return Query{
		Text:         text,
		Limit:        limit,
		SortKey:      sortKey,
		Reverse:      req.Reverse,
		MinPrice:     req.MinPrice,
		MaxPrice:     req.MaxPrice,
		PropertyType: propertyType,
		Amenities:    sanitize.Strings(req.Amenities),
	}, nil
}

// encodedEntities removes the entities sanitization encodes. They must go
// wholesale before the character filter runs, or an apostrophe in a place
// name would leave a garbled fragment in the match needle.
var encodedEntities = strings.NewReplacer(
	"&lt;", "",
	"&gt;", "",
	"&#x27;", "",
	"&quot;", "",
)

// normalizeQuery trims the text and strips the characters that would break a
// structured column match, keeping letters, digits, whitespace and a little
// benign punctuation.
func normalizeQuery(text string) string {
	text = encodedEntities.Replace(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(' ')
		case r == ',' || r == '.' || r == '-':
			b.WriteRune(r)
		case r > 127:
			// Non-ASCII place names pass through untouched.
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
