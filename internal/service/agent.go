package service

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

// Placeholder values produced when the recommendation path fails; the run
// still completes with a persisted result.
const (
	degradedSummary   = "Unable to analyze properties due to an error"
	emptySummary      = "No properties were found for this search."
	tokenChargeEvent  = "1k-llm-tokens"
	resultChargeEvent = "tool-result"
)

// AgentService runs the search-and-recommendation pipeline
type AgentService struct {
	ai       AIClient
	geocoder Geocoder
	listings ListingSource
	renderer *ReportRenderer
	meter    Meter
}

// NewAgentService creates a new agent service
func NewAgentService(ai AIClient, geocoder Geocoder, listings ListingSource, renderer *ReportRenderer, meter Meter) *AgentService {
	if meter == nil {
		meter = LogMeter{}
	}
	return &AgentService{
		ai:       ai,
		geocoder: geocoder,
		listings: listings,
		renderer: renderer,
		meter:    meter,
	}
}

// Run executes one pipeline run for a free-text client request. The stages
// are strictly sequential: parameter extraction, bounds resolution, query
// construction, listing collection, detail normalization, recommendation,
// merge, and report rendering. Only parameter extraction failures abort the
// run; everything downstream degrades per stage and the run still produces
// a result.
func (s *AgentService) Run(ctx context.Context, search string) (*model.RunResult, error) {
	startTime := time.Now()

	// Parameter extraction is upstream of the degradation boundary: without
	// parameters there is nothing to search for
	params, usage, err := s.ai.ExtractSearchParameters(ctx, search)
	if err != nil {
		return nil, fmt.Errorf("failed to extract search parameters: %w", err)
	}
	totalTokens := usage.TotalTokens
	s.chargeTokens(usage)

	log.Printf("Extracted search parameters for %q (location: %s, for_rent: %t)",
		search, params.SearchTerm, params.ForRent)

	// Bounds resolution failure is non-fatal; the query builder handles the
	// explicit absent state
	bounds, err := s.geocoder.ResolveBounds(ctx, params.SearchTerm)
	if err != nil {
		log.Printf("Warning: failed to resolve map bounds: %v", err)
		bounds = nil
	}

	searchURL := BuildSearchURL(params, bounds)

	// Listing collection degrades to an empty list
	listingURLs, err := s.listings.SearchListings(ctx, searchURL)
	if err != nil {
		log.Printf("Warning: listing search failed: %v", err)
		listingURLs = nil
	}
	s.meter.Charge(resultChargeEvent, len(listingURLs))

	// Detail collection degrades to an empty batch; an empty URL list
	// short-circuits inside the listing source
	properties := []model.PropertyRecord{}
	rawDetails, err := s.listings.FetchDetails(ctx, listingURLs, params.ForRent)
	if err != nil {
		log.Printf("Warning: detail retrieval failed: %v", err)
	} else {
		properties = NormalizeProperties(rawDetails)
		s.meter.Charge(resultChargeEvent, len(properties))
	}
	log.Printf("Processed %d detailed property listings", len(properties))

	// The recommendation path has its own failure boundary: any error here
	// converts to an empty recommendation list and a placeholder summary
	recommendations := []model.Recommendation{}
	summary := degradedSummary
	if len(properties) > 0 {
		agentResult, agentUsage, err := s.ai.RecommendProperties(ctx, search, properties)
		if err != nil {
			log.Printf("Error during property analysis: %v", err)
		} else {
			recommendations = agentResult.Properties
			summary = agentResult.Summary
		}
		totalTokens += agentUsage.TotalTokens
		s.chargeTokens(agentUsage)
	} else {
		summary = emptySummary
	}

	enriched := MergeRecommendations(properties, recommendations)
	report := s.renderer.Render(params, enriched, summary)

	return &model.RunResult{
		Search:          search,
		Parameters:      params,
		SearchURL:       searchURL,
		Properties:      properties,
		Recommendations: enriched,
		Summary:         summary,
		Report:          report,
		TotalTokens:     totalTokens,
		Took:            time.Since(startTime).Milliseconds(),
	}, nil
}

// chargeTokens forwards token usage to the metering collaborator in units
// of 1k tokens, rounded up
func (s *AgentService) chargeTokens(usage Usage) {
	if usage.TotalTokens <= 0 {
		return
	}
	s.meter.Charge(tokenChargeEvent, int(math.Ceil(float64(usage.TotalTokens)/1000)))
}
