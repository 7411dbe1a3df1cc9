package geocode

// Status tags how a free-text place resolution ended. Keeping the
// distinction explicit lets callers and tests assert which branch fired
// instead of inferring it from a nil result.
type Status int

const (
	// StatusResolved means the provider returned a usable coordinate.
	StatusResolved Status = iota
	// StatusNoMatch means the provider answered but knows no such place.
	StatusNoMatch
	// StatusUnavailable means the provider errored or timed out.
	StatusUnavailable
)

// Candidate is the coordinate a query resolved to. It lives for one request
// and is never persisted.
type Candidate struct {
	Latitude    float64
	Longitude   float64
	DisplayName string
}

// Outcome is the tagged result of a resolution attempt. Candidate is only
// meaningful when Status is StatusResolved; Err only when StatusUnavailable.
type Outcome struct {
	Status    Status
	Candidate Candidate
	Err       error
}

// nominatimResult mirrors the relevant parts of the OSM search payload.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
