package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/utils"
)

// ApifyClient invokes scraping platform actors and reads back their
// dataset items. Both listing collaborators (search and detail) run
// through the synchronous run endpoint, so one call covers the whole batch.
type ApifyClient struct {
	config     *config.ApifyConfig
	httpClient *http.Client
}

// NewApifyClient creates a new scraping platform client
func NewApifyClient(cfg *config.ApifyConfig) *ApifyClient {
	return &ApifyClient{
		config: cfg,
		httpClient: &http.Client{
			// Actor runs are bounded by the platform's own timeout; give
			// the HTTP call a little headroom on top of it
			Timeout: time.Duration(cfg.Timeout+30) * time.Second,
		},
	}
}

// actorURL is a {url, method} pair in the format the actors expect
type actorURL struct {
	URL    string `json:"url"`
	Method string `json:"method"`
}

// searchActorInput is the run input for the listing search actor
type searchActorInput struct {
	ExtractionMethod string     `json:"extractionMethod"`
	SearchUrls       []actorURL `json:"searchUrls"`
}

// detailActorInput is the run input for the listing detail actor
type detailActorInput struct {
	ExtractBuildingUnits   string     `json:"extractBuildingUnits"`
	PropertyStatus         string     `json:"propertyStatus"`
	StartUrls              []actorURL `json:"startUrls"`
	Addresses              []string   `json:"addresses"`
	SearchResultsDatasetID string     `json:"searchResultsDatasetId"`
}

// runActorSync executes an actor and returns its dataset items
func (c *ApifyClient) runActorSync(ctx context.Context, actorID string, input interface{}, memoryMB int) ([]map[string]interface{}, error) {
	if !c.config.Enabled {
		return nil, fmt.Errorf("Apify API is not enabled (missing API token)")
	}

	reqBody, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run input: %w", err)
	}

	reqURL := fmt.Sprintf("%s/acts/%s/run-sync-get-dataset-items?token=%s&memory=%d&timeout=%d",
		c.config.APIBase, actorID, url.QueryEscape(c.config.Token), memoryMB, c.config.Timeout)

	httpReq, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to run actor %s: %w", actorID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read actor response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("actor %s run failed with status %d: %s", actorID, resp.StatusCode, utils.TruncateString(string(body), 200))
	}

	var items []map[string]interface{}
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal dataset items from actor %s: %w", actorID, err)
	}

	return items, nil
}

// SearchListings runs the listing search actor and extracts detail URLs
// from its result set, preserving source order. The number of processed
// items is capped by configuration as a cost control.
func (c *ApifyClient) SearchListings(ctx context.Context, searchURL string) ([]string, error) {
	log.Printf("Searching listings with URL: %s", searchURL)

	input := searchActorInput{
		ExtractionMethod: "MAP_MARKERS",
		SearchUrls:       []actorURL{{URL: searchURL, Method: "GET"}},
	}

	items, err := c.runActorSync(ctx, c.config.SearchActor, input, c.config.SearchMemory)
	if err != nil {
		return nil, err
	}

	results := make([]string, 0, len(items))
	for _, item := range items {
		if len(results) >= c.config.MaxItems {
			break
		}
		if detailURL := utils.SafeString(item, "detailUrl"); detailURL != nil && *detailURL != "" {
			results = append(results, *detailURL)
		}
	}

	log.Printf("Collected %d listing detail URLs", len(results))
	return results, nil
}

// FetchDetails runs the listing detail actor for a batch of property URLs
// and returns the raw per-property payloads. An empty input short-circuits
// without invoking the platform.
func (c *ApifyClient) FetchDetails(ctx context.Context, propertyURLs []string, forRent bool) ([]map[string]interface{}, error) {
	if len(propertyURLs) == 0 {
		log.Printf("Warning: no property URLs provided to FetchDetails")
		return []map[string]interface{}{}, nil
	}

	log.Printf("Fetching details for %d properties", len(propertyURLs))

	startURLs := make([]actorURL, 0, len(propertyURLs))
	for _, u := range propertyURLs {
		startURLs = append(startURLs, actorURL{URL: u, Method: "GET"})
	}

	propertyStatus := "FOR_SALE"
	if forRent {
		propertyStatus = "FOR_RENT"
	}

	input := detailActorInput{
		ExtractBuildingUnits:   "disabled",
		PropertyStatus:         propertyStatus,
		StartUrls:              startURLs,
		Addresses:              []string{},
		SearchResultsDatasetID: "",
	}

	items, err := c.runActorSync(ctx, c.config.DetailActor, input, c.config.DetailMemory)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		log.Printf("Warning: no items found in the detail scraper dataset")
	}

	return items, nil
}

// Ensure ApifyClient implements ListingSource
var _ ListingSource = (*ApifyClient)(nil)
