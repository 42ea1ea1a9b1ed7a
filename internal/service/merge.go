package service

import (
	"log"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

// MergeRecommendations joins the recommendation service's selections back
// onto the canonical property records by listing URL. A recommendation
// whose URL is missing from the canonical set still produces one output
// record, degraded to the fields the service itself provided; the output
// count always equals the input count.
func MergeRecommendations(records []model.PropertyRecord, recommendations []model.Recommendation) []model.EnrichedRecommendation {
	// Duplicate references should not occur, but when they do the last
	// record wins
	byURL := make(map[string]model.PropertyRecord, len(records))
	for _, record := range records {
		if record.URL != "" {
			byURL[record.URL] = record
		}
	}

	enriched := make([]model.EnrichedRecommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		record, found := byURL[rec.URL]
		if !found {
			log.Printf("Warning: recommended listing %q not found in property details, emitting degraded record", rec.URL)
			record = model.PropertyRecord{URL: rec.URL}
		}
		enriched = append(enriched, model.EnrichedRecommendation{
			PropertyRecord: record,
			MatchReason:    rec.MatchReason,
		})
	}

	return enriched
}
