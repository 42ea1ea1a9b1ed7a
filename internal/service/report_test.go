package service

import (
	"strings"
	"testing"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

func newTestRenderer() *ReportRenderer {
	return NewReportRenderer(&config.AgentConfig{
		DescriptionExcerptLen: 300,
		MaxReportFeatures:     10,
	})
}

func TestRenderTitle(t *testing.T) {
	renderer := newTestRenderer()

	tests := []struct {
		name     string
		params   *model.SearchParameters
		expected string
	}{
		{
			name:     "Nil parameters",
			params:   nil,
			expected: "# Properties for Sale in Real Estate",
		},
		{
			name:     "Sale with both price bounds",
			params:   &model.SearchParameters{SearchTerm: "Austin, TX", PriceMin: intPtr(300000), PriceMax: intPtr(500000)},
			expected: "# Properties for Sale in Austin, TX ($300,000-$500,000)",
		},
		{
			name:     "Rental with minimum price only",
			params:   &model.SearchParameters{SearchTerm: "Miami", ForRent: true, PriceMin: intPtr(1500)},
			expected: "# Rentals in Miami ($1,500+)",
		},
		{
			name:     "Maximum price only",
			params:   &model.SearchParameters{SearchTerm: "Denver", PriceMax: intPtr(750000)},
			expected: "# Properties for Sale in Denver (Up to $750,000)",
		},
		{
			name:     "Minimum bedrooms prefix",
			params:   &model.SearchParameters{SearchTerm: "Seattle", BedsMin: intPtr(3)},
			expected: "# 3+ Bedroom Properties for Sale in Seattle",
		},
		{
			name:     "Zero price bounds are treated as absent",
			params:   &model.SearchParameters{SearchTerm: "Boston", PriceMin: intPtr(0), PriceMax: intPtr(0)},
			expected: "# Properties for Sale in Boston",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := renderer.renderTitle(tt.params)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestRender_FullListing(t *testing.T) {
	renderer := newTestRenderer()
	params := &model.SearchParameters{SearchTerm: "Austin, TX"}
	recommendations := []model.EnrichedRecommendation{
		{
			PropertyRecord: model.PropertyRecord{
				StreetAddress: strPtr("123 Main St"),
				City:          strPtr("Austin"),
				State:         strPtr("TX"),
				Zipcode:       strPtr("78701"),
				Price:         intPtr(450000),
				Bedrooms:      intPtr(3),
				Bathrooms:     intPtr(2),
				Description:   strPtr("A lovely home near the river."),
				URL:           "https://www.zillow.com/homedetails/1",
				Amenities:     []string{"Pool"},
				Appliances:    []string{"Dishwasher"},
			},
			MatchReason: "Within budget and close to downtown",
		},
	}

	report := renderer.Render(params, recommendations, "One strong candidate.")

	expectedFragments := []string{
		"# Properties for Sale in Austin, TX",
		"## Summary\n\nOne strong candidate.",
		"## Top Recommended Properties",
		"### 1. 123 Main St, Austin, TX 78701",
		"**$450,000** | 3 bed, 2 bath",
		"A lovely home near the river. [See more](https://www.zillow.com/homedetails/1)",
		"**Features:**\n- Pool\n- Dishwasher",
		"**Why This Property Matches Your Needs:**\nWithin budget and close to downtown",
		"\n---\n",
	}
	for _, fragment := range expectedFragments {
		if !strings.Contains(report, fragment) {
			t.Errorf("Expected report to contain %q\nReport:\n%s", fragment, report)
		}
	}
}

func TestRender_MissingFieldsUsePlaceholders(t *testing.T) {
	renderer := newTestRenderer()
	recommendations := []model.EnrichedRecommendation{
		{PropertyRecord: model.PropertyRecord{URL: "https://www.zillow.com/homedetails/1"}},
	}

	report := renderer.Render(&model.SearchParameters{SearchTerm: "Austin"}, recommendations, "Summary.")

	if !strings.Contains(report, "### 1. Address not available") {
		t.Errorf("Expected address placeholder, got:\n%s", report)
	}
	if !strings.Contains(report, "**Price not specified**") {
		t.Errorf("Expected price placeholder, got:\n%s", report)
	}
	if !strings.Contains(report, "No description available [See more]") {
		t.Errorf("Expected description placeholder, got:\n%s", report)
	}
	if strings.Contains(report, "bed") {
		t.Errorf("Expected no beds/baths clause for absent counts, got:\n%s", report)
	}
	if strings.Contains(report, "**Features:**") {
		t.Errorf("Expected no features block for empty feature lists, got:\n%s", report)
	}
	if strings.Contains(report, "Why This Property Matches") {
		t.Errorf("Expected no match reason block for empty reason, got:\n%s", report)
	}
}

func TestRender_Idempotent(t *testing.T) {
	renderer := newTestRenderer()
	params := &model.SearchParameters{SearchTerm: "Austin", ForRent: true, PriceMax: intPtr(2500)}
	recommendations := []model.EnrichedRecommendation{
		{
			PropertyRecord: model.PropertyRecord{
				City:       strPtr("Austin"),
				Price:      intPtr(2200),
				Amenities:  []string{"Gym", "Pool"},
				Appliances: []string{"Washer", "Dryer"},
				URL:        "https://www.zillow.com/homedetails/1",
			},
			MatchReason: "Fits the budget",
		},
	}

	first := renderer.Render(params, recommendations, "Summary.")
	second := renderer.Render(params, recommendations, "Summary.")
	if first != second {
		t.Error("Expected identical reports for identical input")
	}
}

func TestRenderFeatures_CapAndDedup(t *testing.T) {
	renderer := newTestRenderer()

	rec := model.EnrichedRecommendation{
		PropertyRecord: model.PropertyRecord{
			Amenities:          []string{"Pool", "Gym", "Pool", "Sauna", "Garage"},
			CommunityAmenities: []string{"Gym", "Clubhouse", "Playground", "Tennis Court"},
			Appliances:         []string{"Dishwasher", "Unknown", "Oven", "Microwave", "Refrigerator"},
		},
	}

	text := renderer.renderFeatures(rec)

	if strings.Contains(text, unknownFeature) {
		t.Errorf("Expected Unknown excluded from features, got:\n%s", text)
	}
	if strings.Count(text, "\n- Pool") != 1 {
		t.Errorf("Expected duplicates collapsed, got:\n%s", text)
	}

	bullets := strings.Count(text, "\n- ")
	// 10 features plus the overflow marker
	if bullets != 11 {
		t.Errorf("Expected 10 feature bullets plus overflow marker, got %d:\n%s", bullets, text)
	}
	if !strings.HasSuffix(text, "- *(and more)*") {
		t.Errorf("Expected overflow marker at end, got:\n%s", text)
	}
	// First-seen order across the three sources
	if !strings.Contains(text, "**Features:**\n- Pool\n- Gym\n- Sauna") {
		t.Errorf("Expected first-seen ordering, got:\n%s", text)
	}
}

func TestExcerpt(t *testing.T) {
	long := strings.Repeat("a", 350)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{"Short text untouched", "A cozy home.", "A cozy home."},
		{"Exact length untouched", strings.Repeat("b", 300), strings.Repeat("b", 300)},
		{"Long text truncated with ellipsis", long, strings.Repeat("a", 300) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := excerpt(tt.text, 300)
			if result != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestParseEmbeddedAnnotations(t *testing.T) {
	url := `https://www.zillow.com/homedetails/123-zpid/"address: 123 Main St, Austin, TX"price: $450,000"bedrooms: 3"bathrooms: 2"match_reason: Close to downtown`

	embedded := parseEmbeddedAnnotations(url)
	if embedded.address != "123 Main St, Austin, TX" {
		t.Errorf("Unexpected address: %q", embedded.address)
	}
	if embedded.price != "$450,000" {
		t.Errorf("Unexpected price: %q", embedded.price)
	}
	if embedded.bedrooms != "3" {
		t.Errorf("Unexpected bedrooms: %q", embedded.bedrooms)
	}
	if embedded.bathrooms != "2" {
		t.Errorf("Unexpected bathrooms: %q", embedded.bathrooms)
	}
}

func TestParseEmbeddedAnnotations_KeyFeaturesTerminator(t *testing.T) {
	url := `https://www.zillow.com/homedetails/123-zpid/"address: 9 Oak Ave"price: $1,800"bedrooms: 2"bathrooms: 1"key_features: Pool, Gym`

	embedded := parseEmbeddedAnnotations(url)
	if embedded.bathrooms != "1" {
		t.Errorf("Unexpected bathrooms: %q", embedded.bathrooms)
	}
}

func TestRenderListing_EmbeddedAnnotationsOverrideRecord(t *testing.T) {
	renderer := newTestRenderer()
	rec := model.EnrichedRecommendation{
		PropertyRecord: model.PropertyRecord{
			City:  strPtr("Recorded City"),
			Price: intPtr(999999),
			URL:   `https://www.zillow.com/homedetails/123-zpid/"address: 9 Oak Ave"price: $1,800"bedrooms: 2"bathrooms: 1"match_reason: Cheap`,
		},
		MatchReason: "Cheap",
	}

	section := renderer.renderListing(1, rec)
	if !strings.Contains(section, "### 1. 9 Oak Ave") {
		t.Errorf("Expected embedded address to win, got:\n%s", section)
	}
	if !strings.Contains(section, "**$1,800** | 2 bed, 1 bath") {
		t.Errorf("Expected embedded price and counts, got:\n%s", section)
	}
	if !strings.Contains(section, "[See more](https://www.zillow.com/homedetails/123-zpid/)") {
		t.Errorf("Expected the URL cleaned of annotations, got:\n%s", section)
	}
}

func TestFormatThousands(t *testing.T) {
	tests := []struct {
		input    int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{450000, "450,000"},
		{1234567, "1,234,567"},
		{-2500, "-2,500"},
	}

	for _, tt := range tests {
		if result := formatThousands(tt.input); result != tt.expected {
			t.Errorf("formatThousands(%d): expected %q, got %q", tt.input, tt.expected, result)
		}
	}
}

func TestAssembleAddress_PartialComponents(t *testing.T) {
	record := model.PropertyRecord{City: strPtr("Austin"), State: strPtr("TX")}
	result := assembleAddress(record)
	if result != ", Austin, TX" {
		t.Errorf("Expected partial address %q, got %q", ", Austin, TX", result)
	}
}
