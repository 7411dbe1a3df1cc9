// Package domain holds the listings read model the search engine operates on.
// Listings are owned by the marketplace CRUD surface; the engine only
// filters, sorts and projects them.
package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PropertyType is the fixed set of listing categories.
type PropertyType string

const (
	PropertyFlat   PropertyType = "flat"
	PropertyHouse  PropertyType = "house"
	PropertyVilla  PropertyType = "villa"
	PropertyPG     PropertyType = "pg"
	PropertyShop   PropertyType = "shop"
	PropertyOffice PropertyType = "office"
)

// ParsePropertyType returns the matching type, case-insensitively.
func ParsePropertyType(value string) (PropertyType, bool) {
	switch PropertyType(strings.ToLower(strings.TrimSpace(value))) {
	case PropertyFlat:
		return PropertyFlat, true
	case PropertyHouse:
		return PropertyHouse, true
	case PropertyVilla:
		return PropertyVilla, true
	case PropertyPG:
		return PropertyPG, true
	case PropertyShop:
		return PropertyShop, true
	case PropertyOffice:
		return PropertyOffice, true
	}
	return "", false
}

// SortKey selects the ordering of a result set.
type SortKey string

const (
	SortPrice     SortKey = "PRICE"
	SortCreatedAt SortKey = "CREATED_AT"
	SortRelevance SortKey = "RELEVANCE"
)

// ParseSortKey returns the matching key, case-insensitively.
func ParseSortKey(value string) (SortKey, bool) {
	switch SortKey(strings.ToUpper(strings.TrimSpace(value))) {
	case SortPrice:
		return SortPrice, true
	case SortCreatedAt:
		return SortCreatedAt, true
	case SortRelevance:
		return SortRelevance, true
	}
	return "", false
}

// Variant is a rentable unit of a listing with its own price. Prices arrive
// as free text from the owning CRUD surface and may not be numeric.
type Variant struct {
	Label string `json:"label"`
	Price string `json:"price"`
}

// ListingSummary is the read-only projection of an externally-owned listing.
// The engine never mutates one.
type ListingSummary struct {
	ID           uuid.UUID
	Title        string
	Description  string
	PropertyType PropertyType
	State        string
	City         string
	Locality     string
	Latitude     float64
	Longitude    float64
	Variants     []Variant
	Amenities    []string
	Available    bool
	ContactName  string
	ContactPhone string
	CreatedAt    time.Time
}

// MinPrice returns the minimum variant price, the value every price
// comparison uses. Non-numeric variant prices count as zero; a listing with
// no variants prices at zero.
func (l ListingSummary) MinPrice() float64 {
	if len(l.Variants) == 0 {
		return 0
	}

	min := variantPrice(l.Variants[0])
	for _, v := range l.Variants[1:] {
		if p := variantPrice(v); p < min {
			min = p
		}
	}
	return min
}

// priceFormat is the numeric shape a variant price must have to count as a
// number. The listings_min_price migration function coerces with the same
// pattern; the two must agree or a price bound would cut differently
// depending on which resolution tier produced the result set.
var priceFormat = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

func variantPrice(v Variant) float64 {
	trimmed := strings.TrimSpace(v.Price)
	if !priceFormat.MatchString(trimmed) {
		return 0
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0
	}
	return price
}
