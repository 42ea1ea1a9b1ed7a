package service

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

// decodeQueryState extracts and decodes the searchQueryState document from
// a built search URL
func decodeQueryState(t *testing.T, rawURL string) map[string]interface{} {
	t.Helper()

	parts := strings.SplitN(rawURL, "searchQueryState=", 2)
	if len(parts) != 2 {
		t.Fatalf("URL does not contain a searchQueryState parameter: %s", rawURL)
	}

	decoded, err := url.QueryUnescape(parts[1])
	if err != nil {
		t.Fatalf("Failed to decode query state: %v", err)
	}

	var state map[string]interface{}
	if err := json.Unmarshal([]byte(decoded), &state); err != nil {
		t.Fatalf("Query state is not valid JSON: %v", err)
	}

	return state
}

func filterState(t *testing.T, state map[string]interface{}) map[string]interface{} {
	t.Helper()
	fs, ok := state["filterState"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected filterState to be present")
	}
	return fs
}

func TestBuildSearchURL_BasePath(t *testing.T) {
	tests := []struct {
		name    string
		forRent bool
		want    string
	}{
		{name: "for sale", forRent: false, want: "https://www.zillow.com/homes/for_sale/?searchQueryState="},
		{name: "for rent", forRent: true, want: "https://www.zillow.com/homes/for_rent/?searchQueryState="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := &model.SearchParameters{SearchTerm: "Austin, TX", ForRent: tt.forRent}
			got := BuildSearchURL(params, nil)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("BuildSearchURL() = %s, want prefix %s", got, tt.want)
			}
		})
	}
}

func TestBuildSearchURL_Baseline(t *testing.T) {
	params := &model.SearchParameters{SearchTerm: "Austin, TX"}
	state := decodeQueryState(t, BuildSearchURL(params, nil))

	if state["usersSearchTerm"] != "Austin, TX" {
		t.Errorf("Expected usersSearchTerm to be Austin, TX, got %v", state["usersSearchTerm"])
	}
	if state["isListVisible"] != true {
		t.Error("Expected isListVisible to be true")
	}
	if _, ok := state["pagination"].(map[string]interface{}); !ok {
		t.Error("Expected empty pagination object")
	}

	fs := filterState(t, state)
	if sort, _ := fs["sort"].(map[string]interface{}); sort["value"] != "globalrelevanceex" {
		t.Errorf("Expected default sort, got %v", fs["sort"])
	}
	for _, key := range []string{"fsba", "fsbo", "nc", "cmsn", "auc", "fore"} {
		entry, ok := fs[key].(map[string]interface{})
		if !ok || entry["value"] != false {
			t.Errorf("Expected baseline exclusion %s to be {value: false}, got %v", key, fs[key])
		}
	}
}

func TestBuildSearchURL_AbsentBounds(t *testing.T) {
	params := &model.SearchParameters{SearchTerm: "Nowhere"}
	state := decodeQueryState(t, BuildSearchURL(params, nil))

	if _, exists := state["mapBounds"]; exists {
		t.Error("Expected mapBounds to be omitted when bounds resolution failed")
	}
	if state["isMapVisible"] != false {
		t.Error("Expected isMapVisible to be false without bounds")
	}
}

func TestBuildSearchURL_WithBounds(t *testing.T) {
	params := &model.SearchParameters{SearchTerm: "Austin, TX"}
	bounds := &model.GeoBounds{West: -98.0, East: -97.5, South: 30.1, North: 30.5}
	state := decodeQueryState(t, BuildSearchURL(params, bounds))

	mapBounds, ok := state["mapBounds"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected mapBounds to be present")
	}
	if mapBounds["west"] != -98.0 || mapBounds["east"] != -97.5 || mapBounds["south"] != 30.1 || mapBounds["north"] != 30.5 {
		t.Errorf("Unexpected mapBounds: %v", mapBounds)
	}
	if state["isMapVisible"] != true {
		t.Error("Expected isMapVisible to be true with bounds")
	}
}

func TestBuildSearchURL_OptionalKeyPresence(t *testing.T) {
	// An optional filter key appears iff the input field is set; explicit
	// false is distinguishable from unset
	params := &model.SearchParameters{
		SearchTerm: "Austin, TX",
		PriceMin:   intPtr(200000),
		PriceMax:   intPtr(500000),
		BedsMin:    intPtr(3),
		BathsMin:   intPtr(2),
		SqftMin:    intPtr(1000),
		Garage:     boolPtr(true),
		Pool:       boolPtr(false),
	}
	fs := filterState(t, decodeQueryState(t, BuildSearchURL(params, nil)))

	price, ok := fs["price"].(map[string]interface{})
	if !ok || price["min"] != float64(200000) || price["max"] != float64(500000) {
		t.Errorf("Unexpected price filter: %v", fs["price"])
	}
	if beds, _ := fs["beds"].(map[string]interface{}); beds["min"] != float64(3) {
		t.Errorf("Unexpected beds filter: %v", fs["beds"])
	}
	if baths, _ := fs["baths"].(map[string]interface{}); baths["min"] != float64(2) {
		t.Errorf("Unexpected baths filter: %v", fs["baths"])
	}
	sqft, ok := fs["sqft"].(map[string]interface{})
	if !ok || sqft["min"] != float64(1000) {
		t.Errorf("Unexpected sqft filter: %v", fs["sqft"])
	}
	if _, exists := sqft["max"]; exists {
		t.Error("Expected sqft max to be omitted when unset")
	}

	if gar, _ := fs["gar"].(map[string]interface{}); gar["value"] != true {
		t.Errorf("Expected gar {value: true}, got %v", fs["gar"])
	}
	// Explicit false still emits the key
	if pool, _ := fs["pool"].(map[string]interface{}); pool["value"] != false {
		t.Errorf("Expected pool {value: false}, got %v", fs["pool"])
	}

	// Unset flags emit no key at all
	for _, key := range []string{"ac", "sto", "wat", "cityv", "mouv"} {
		if _, exists := fs[key]; exists {
			t.Errorf("Expected %s to be absent when the flag is unset", key)
		}
	}
}

func TestBuildSearchURL_RentalKeysNeverLeakIntoSales(t *testing.T) {
	// Rental-only fields set on a sale search must be ignored entirely
	params := &model.SearchParameters{
		SearchTerm:        "Austin, TX",
		ForRent:           false,
		PetsAllowed:       boolPtr(true),
		Furnished:         boolPtr(true),
		UtilitiesIncluded: boolPtr(true),
		OnsiteParking:     boolPtr(true),
	}
	fs := filterState(t, decodeQueryState(t, BuildSearchURL(params, nil)))

	for _, key := range []string{"fr", "np", "fur", "uti", "par"} {
		if _, exists := fs[key]; exists {
			t.Errorf("Rental-only key %s leaked into a sale query", key)
		}
	}
}

func TestBuildSearchURL_RentalKeys(t *testing.T) {
	params := &model.SearchParameters{
		SearchTerm:  "Austin, TX",
		ForRent:     true,
		PetsAllowed: boolPtr(true),
		Furnished:   boolPtr(false),
	}
	fs := filterState(t, decodeQueryState(t, BuildSearchURL(params, nil)))

	if fr, _ := fs["fr"].(map[string]interface{}); fr["value"] != true {
		t.Errorf("Expected fr {value: true} on rental queries, got %v", fs["fr"])
	}
	if np, _ := fs["np"].(map[string]interface{}); np["value"] != true {
		t.Errorf("Expected np {value: true}, got %v", fs["np"])
	}
	if fur, _ := fs["fur"].(map[string]interface{}); fur["value"] != false {
		t.Errorf("Expected fur {value: false}, got %v", fs["fur"])
	}
	for _, key := range []string{"uti", "par"} {
		if _, exists := fs[key]; exists {
			t.Errorf("Expected %s to be absent when the flag is unset", key)
		}
	}
}

// Helper functions

func intPtr(v int) *int {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func strPtr(v string) *string {
	return &v
}
