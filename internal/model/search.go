package model

// SearchParameters represents structured search intent distilled from a
// free-text client request by the parameter extraction service
type SearchParameters struct {
	// Essential search parameters
	SearchTerm string `json:"search_term" binding:"required"`
	ForRent    bool   `json:"for_rent"`

	// Price and payment
	PriceMin *int `json:"price_min,omitempty"`
	PriceMax *int `json:"price_max,omitempty"`

	// Basic property features
	BedsMin  *int `json:"beds_min,omitempty"`
	BathsMin *int `json:"baths_min,omitempty"`
	SqftMin  *int `json:"sqft_min,omitempty"`
	SqftMax  *int `json:"sqft_max,omitempty"`

	// Key amenities
	Garage          *bool `json:"garage,omitempty"`
	AC              *bool `json:"ac,omitempty"`
	Pool            *bool `json:"pool,omitempty"`
	SingleStoryOnly *bool `json:"single_story_only,omitempty"`

	// Views and location features
	Waterfront   *bool `json:"waterfront,omitempty"`
	CityView     *bool `json:"city_view,omitempty"`
	MountainView *bool `json:"mountain_view,omitempty"`

	// Rental-specific features (only used if for_rent is true)
	PetsAllowed       *bool `json:"pets_allowed,omitempty"`
	Furnished         *bool `json:"furnished,omitempty"`
	UtilitiesIncluded *bool `json:"utilities_included,omitempty"`
	OnsiteParking     *bool `json:"onsite_parking,omitempty"`
}

// GeoBounds represents a geographic bounding box in degrees.
// A nil *GeoBounds means bounds resolution failed; a zero-valued box is
// never used as a stand-in for "unknown".
type GeoBounds struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	North float64 `json:"north"`
}

// RunRequest represents a request to run the agent pipeline
type RunRequest struct {
	Search string `json:"search" binding:"required"`
}

// RunResult is the combined output of one pipeline run
type RunResult struct {
	ID              int64                    `json:"id,omitempty"`
	Search          string                   `json:"search"`
	Parameters      *SearchParameters        `json:"parameters"`
	SearchURL       string                   `json:"search_url"`
	Properties      []PropertyRecord         `json:"properties"`
	Recommendations []EnrichedRecommendation `json:"recommendations"`
	Summary         string                   `json:"summary"`
	Report          string                   `json:"report"`
	TotalTokens     int                      `json:"total_tokens"`
	Took            int64                    `json:"took_ms"`
}
