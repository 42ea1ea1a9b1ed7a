package model

// PropertyRecord is the canonical, flattened representation of a raw
// listing detail payload, independent of its original nested shape.
// Optional fields stay nil when the source payload does not carry them.
type PropertyRecord struct {
	StreetAddress *string `json:"streetAddress,omitempty"`
	City          *string `json:"city,omitempty"`
	State         *string `json:"state,omitempty"`
	Zipcode       *string `json:"zipcode,omitempty"`
	Country       *string `json:"country,omitempty"`

	YearBuilt   *int    `json:"yearBuilt,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         string  `json:"url"`

	// Averaged over qualifying floor plans for multi-unit buildings,
	// otherwise taken from the top-level listing fields
	Bedrooms  *int `json:"bedrooms,omitempty"`
	Bathrooms *int `json:"bathrooms,omitempty"`
	Price     *int `json:"price,omitempty"`

	Features           []string `json:"features,omitempty"`
	Facts              []Fact   `json:"facts,omitempty"`
	Amenities          []string `json:"amenities,omitempty"`
	CommunityAmenities []string `json:"communityAmenities,omitempty"`
	Appliances         []string `json:"appliances,omitempty"`

	BikeScore    *int `json:"bikescore,omitempty"`
	TransitScore *int `json:"transitScore,omitempty"`
	WalkScore    *int `json:"walkScore,omitempty"`
}

// Fact is a single at-a-glance label/value pair from the listing source
type Fact struct {
	Label string `json:"factLabel"`
	Value string `json:"factValue"`
}

// Recommendation is one selection returned by the recommendation service,
// keyed by the property's listing URL
type Recommendation struct {
	MatchReason string `json:"match_reason"`
	URL         string `json:"url"`
}

// AgentResult is the structured output of the recommendation service
type AgentResult struct {
	Properties []Recommendation `json:"properties"`
	Summary    string           `json:"summary"`
}

// EnrichedRecommendation joins a canonical property record with the
// recommendation service's stated match rationale. When the referenced
// listing is missing from the canonical set, the embedded record is a
// degraded one carrying only the fields the service itself provided.
type EnrichedRecommendation struct {
	PropertyRecord
	MatchReason string `json:"match_reason,omitempty"`
}
