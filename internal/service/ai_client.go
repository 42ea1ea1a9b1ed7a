package service

import (
	"context"
	"log"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

// AIClient is the interface for the language model collaborators. Both
// operations carry a token usage count so the caller can forward it to the
// metering collaborator; the core never computes cost itself.
type AIClient interface {
	// ExtractSearchParameters turns a free-text client request into
	// structured search parameters
	ExtractSearchParameters(ctx context.Context, search string) (*model.SearchParameters, Usage, error)

	// RecommendProperties asks the recommendation service to select the
	// best matches from the canonical property list and explain them
	RecommendProperties(ctx context.Context, search string, properties []model.PropertyRecord) (*model.AgentResult, Usage, error)

	// IsEnabled returns whether the AI client is configured and ready
	IsEnabled() bool
}

// Usage reports token consumption of a single language model call
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Geocoder resolves a place name into a bounding box. A nil result with a
// nil error means the place could not be resolved; callers must treat that
// as an explicit absent state, never as zero-valued bounds.
type Geocoder interface {
	ResolveBounds(ctx context.Context, searchTerm string) (*model.GeoBounds, error)
}

// ListingSource is the interface for the scraping platform collaborators
type ListingSource interface {
	// SearchListings runs the listing search and returns detail URLs in
	// source order
	SearchListings(ctx context.Context, searchURL string) ([]string, error)

	// FetchDetails runs the detail scraper for a batch of listing URLs and
	// returns the raw, deeply-nested per-property payloads
	FetchDetails(ctx context.Context, propertyURLs []string, forRent bool) ([]map[string]interface{}, error)
}

// Meter forwards usage counts to the external metering collaborator
type Meter interface {
	Charge(eventName string, count int)
}

// LogMeter is the default Meter: it only records charges in the log
type LogMeter struct{}

// Charge logs the event instead of billing it
func (LogMeter) Charge(eventName string, count int) {
	if count <= 0 {
		return
	}
	log.Printf("Charge event %q x%d", eventName, count)
}
