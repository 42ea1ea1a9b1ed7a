package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

// GeocodeClient resolves place names into map bounds using the OpenCage
// geocoding API. One attempt per lookup with a bounded timeout.
type GeocodeClient struct {
	config     *config.GeocodingConfig
	httpClient *http.Client
}

// NewGeocodeClient creates a new geocoding client
func NewGeocodeClient(cfg *config.GeocodingConfig) *GeocodeClient {
	return &GeocodeClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
	}
}

// geocodeResponse is the subset of the OpenCage response we read
type geocodeResponse struct {
	Results []struct {
		Bounds *struct {
			Northeast struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"northeast"`
			Southwest struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"southwest"`
		} `json:"bounds"`
	} `json:"results"`
}

// ResolveBounds returns the bounding box for a location, or nil when the
// location cannot be resolved. Resolution failure is non-fatal: the caller
// gets an explicit absent state, never fabricated coordinates.
func (c *GeocodeClient) ResolveBounds(ctx context.Context, searchTerm string) (*model.GeoBounds, error) {
	if !c.config.Enabled {
		log.Printf("Warning: geocoding is disabled (missing OPENCAGE_API_KEY), proceeding without map bounds")
		return nil, nil
	}

	reqURL := fmt.Sprintf("%s/geocode/v1/json?q=%s&key=%s&no_annotations=1",
		c.config.APIBase, url.QueryEscape(searchTerm), c.config.APIKey)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read geocoding response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoding request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var data geocodeResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal geocoding response: %w", err)
	}

	if len(data.Results) == 0 || data.Results[0].Bounds == nil {
		log.Printf("No bounds found for location %q", searchTerm)
		return nil, nil
	}

	bounds := data.Results[0].Bounds
	result := &model.GeoBounds{
		West:  bounds.Southwest.Lng,
		East:  bounds.Northeast.Lng,
		South: bounds.Southwest.Lat,
		North: bounds.Northeast.Lat,
	}

	log.Printf("Successfully geocoded %q, bounds: %f, %f, %f, %f",
		searchTerm, result.West, result.East, result.South, result.North)

	return result, nil
}

// Ensure GeocodeClient implements Geocoder
var _ Geocoder = (*GeocodeClient)(nil)
