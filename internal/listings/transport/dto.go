package transport

import (
	"time"

	"rental_portal_backend/internal/listings/domain"
	"rental_portal_backend/platform/phone"
)

// SearchRequest is the POST /listings/search body. Every field is optional;
// each present field must pass its declared validation before the request
// reaches the orchestrator.
type SearchRequest struct {
	Query        string   `json:"query" validate:"omitempty,max=1000"`
	Limit        int      `json:"limit" validate:"omitempty,min=1,max=50"`
	SortKey      string   `json:"sortKey" validate:"omitempty,max=20"`
	Reverse      bool     `json:"reverse"`
	MinPrice     *float64 `json:"minPrice" validate:"omitempty,min=0"`
	MaxPrice     *float64 `json:"maxPrice" validate:"omitempty,min=0"`
	Location     string   `json:"location" validate:"omitempty,max=200"`
	PropertyType string   `json:"propertyType" validate:"omitempty,max=20"`
	Amenities    []string `json:"amenities" validate:"omitempty,max=20,dive,max=50"`
}

// DefaultLimit is the page size applied when the request names none.
const DefaultLimit = 24

// ListQuery is the GET /listings query string. Coordinates arrive as raw
// strings: an absent or malformed pair selects the cached fallback list
// instead of erroring.
type ListQuery struct {
	Lat    string `form:"lat"`
	Lng    string `form:"lng"`
	Radius string `form:"radius"`
	Mode   string `form:"mode"`
}

// ListingResponse is the public projection of a listing.
type ListingResponse struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	PropertyType string           `json:"propertyType"`
	State        string           `json:"state"`
	City         string           `json:"city"`
	Locality     string           `json:"locality"`
	Latitude     float64          `json:"latitude"`
	Longitude    float64          `json:"longitude"`
	Variants     []domain.Variant `json:"variants"`
	Amenities    []string         `json:"amenities"`
	ContactName  string           `json:"contactName"`
	ContactPhone string           `json:"contactPhone"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// AreaAggregate is one locality bucket in the GET areas mode.
type AreaAggregate struct {
	Name  string `json:"name"`
	City  string `json:"city"`
	Count int    `json:"count"`
}

// ToResponse projects a domain listing for the wire, normalizing the contact
// phone for display.
func ToResponse(l domain.ListingSummary) ListingResponse {
	variants := l.Variants
	if variants == nil {
		variants = []domain.Variant{}
	}
	amenities := l.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	return ListingResponse{
		ID:           l.ID.String(),
		Title:        l.Title,
		Description:  l.Description,
		PropertyType: string(l.PropertyType),
		State:        l.State,
		City:         l.City,
		Locality:     l.Locality,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Variants:     variants,
		Amenities:    amenities,
		ContactName:  l.ContactName,
		ContactPhone: phone.Display(l.ContactPhone),
		CreatedAt:    l.CreatedAt,
	}
}

// ToResponses projects a slice, never returning nil so empty result sets
// serialize as [].
func ToResponses(items []domain.ListingSummary) []ListingResponse {
	out := make([]ListingResponse, len(items))
	for i, item := range items {
		out[i] = ToResponse(item)
	}
	return out
}
