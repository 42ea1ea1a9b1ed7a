package service

import (
	"fmt"
	"strings"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/config"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

const (
	addressPlaceholder     = "Address not available"
	descriptionPlaceholder = "No description available"
	pricePlaceholder       = "Price not specified"
	unknownFeature         = "Unknown"
)

// ReportRenderer turns merged recommendations into a markdown report.
// Rendering is pure and total: the same input always produces the same
// document, and any missing field degrades to a placeholder.
type ReportRenderer struct {
	excerptLen  int
	maxFeatures int
}

// NewReportRenderer creates a report renderer
func NewReportRenderer(cfg *config.AgentConfig) *ReportRenderer {
	return &ReportRenderer{
		excerptLen:  cfg.DescriptionExcerptLen,
		maxFeatures: cfg.MaxReportFeatures,
	}
}

// Render builds the full markdown report from the search parameters, the
// enriched recommendations (in input order), and the summary text
func (r *ReportRenderer) Render(params *model.SearchParameters, recommendations []model.EnrichedRecommendation, summary string) string {
	var report strings.Builder

	report.WriteString(r.renderTitle(params))
	report.WriteString("\n\n## Summary\n\n")
	report.WriteString(summary)
	report.WriteString("\n\n## Top Recommended Properties\n")

	for i, rec := range recommendations {
		report.WriteString(r.renderListing(i+1, rec))
	}

	return report.String()
}

// renderTitle builds the report heading from location, transaction mode,
// minimum bedrooms, and the price band
func (r *ReportRenderer) renderTitle(params *model.SearchParameters) string {
	location := "Real Estate"
	forRent := false
	var priceMin, priceMax, bedsMin *int

	if params != nil {
		if params.SearchTerm != "" {
			location = params.SearchTerm
		}
		forRent = params.ForRent
		priceMin = params.PriceMin
		priceMax = params.PriceMax
		bedsMin = params.BedsMin
	}

	transactionType := "Properties for Sale"
	if forRent {
		transactionType = "Rentals"
	}

	priceRange := ""
	switch {
	case present(priceMin) && present(priceMax):
		priceRange = fmt.Sprintf(" ($%s-$%s)", formatThousands(*priceMin), formatThousands(*priceMax))
	case present(priceMin):
		priceRange = fmt.Sprintf(" ($%s+)", formatThousands(*priceMin))
	case present(priceMax):
		priceRange = fmt.Sprintf(" (Up to $%s)", formatThousands(*priceMax))
	}

	bedsText := ""
	if present(bedsMin) {
		bedsText = fmt.Sprintf("%d+ Bedroom ", *bedsMin)
	}

	return fmt.Sprintf("# %s%s in %s%s", bedsText, transactionType, location, priceRange)
}

// renderListing builds one numbered property section
func (r *ReportRenderer) renderListing(index int, rec model.EnrichedRecommendation) string {
	// Some recommendation services return the URL with inline annotations
	// appended; recover the clean URL and any embedded fields
	embedded := parseEmbeddedAnnotations(rec.URL)
	cleanURL := rec.URL
	if cut := strings.Index(cleanURL, `"`); cut >= 0 {
		cleanURL = cleanURL[:cut]
	}

	price := pricePlaceholder
	if embedded.price != "" {
		price = embedded.price
	} else if rec.Price != nil {
		price = "$" + formatThousands(*rec.Price)
	}

	bedsBaths := renderBedsBaths(embedded, rec)

	address := embedded.address
	if address == "" {
		address = assembleAddress(rec.PropertyRecord)
	}

	description := descriptionPlaceholder
	if rec.Description != nil && *rec.Description != "" {
		description = excerpt(*rec.Description, r.excerptLen)
	}

	featuresText := r.renderFeatures(rec)

	reasonText := ""
	if rec.MatchReason != "" {
		reasonText = fmt.Sprintf("\n\n**Why This Property Matches Your Needs:**\n%s", rec.MatchReason)
	}

	return fmt.Sprintf("\n### %d. %s\n\n**%s** | %s\n\n%s [See more](%s)\n%s%s\n\n---\n",
		index, address, price, bedsBaths, description, cleanURL, featuresText, reasonText)
}

// renderBedsBaths builds the "N bed, N bath" line, omitting absent clauses
func renderBedsBaths(embedded embeddedListing, rec model.EnrichedRecommendation) string {
	beds := embedded.bedrooms
	if beds == "" && rec.Bedrooms != nil {
		beds = fmt.Sprintf("%d", *rec.Bedrooms)
	}
	baths := embedded.bathrooms
	if baths == "" && rec.Bathrooms != nil {
		baths = fmt.Sprintf("%d", *rec.Bathrooms)
	}

	line := ""
	if beds != "" {
		line = beds + " bed"
	}
	if baths != "" {
		line += ", " + baths + " bath"
	}
	return line
}

// assembleAddress joins the address components, substituting a placeholder
// when every component is empty
func assembleAddress(record model.PropertyRecord) string {
	street := stringOrEmpty(record.StreetAddress)
	city := stringOrEmpty(record.City)
	state := stringOrEmpty(record.State)
	zipcode := stringOrEmpty(record.Zipcode)

	if street == "" && city == "" && state == "" && zipcode == "" {
		return addressPlaceholder
	}

	return strings.TrimSpace(fmt.Sprintf("%s, %s, %s %s", street, city, state, zipcode))
}

// renderFeatures builds the deduplicated feature bullet list from unit
// amenities, community amenities, and appliances
func (r *ReportRenderer) renderFeatures(rec model.EnrichedRecommendation) string {
	appliances := make([]string, 0, len(rec.Appliances))
	for _, a := range rec.Appliances {
		if a != unknownFeature {
			appliances = append(appliances, a)
		}
	}

	features := unionStrings(rec.Amenities, rec.CommunityAmenities, appliances)
	if len(features) == 0 {
		return ""
	}

	var text strings.Builder
	text.WriteString("\n\n**Features:**")
	for i, feature := range features {
		if i >= r.maxFeatures {
			text.WriteString("\n- *(and more)*")
			break
		}
		text.WriteString("\n- " + feature)
	}
	return text.String()
}

// excerpt caps text at maxLen characters, adding an ellipsis when truncated
func excerpt(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}

// embeddedListing holds fields recovered from inline URL annotations
type embeddedListing struct {
	address   string
	price     string
	bedrooms  string
	bathrooms string
}

// parseEmbeddedAnnotations extracts listing fields from the legacy inline
// annotation format some recommendation outputs embed in the URL, e.g.
// `https://...zpid/"address: 1 Main St"price: $500,000"bedrooms: 3...`.
// Unparseable input yields an empty result and the record's own data is
// used instead.
func parseEmbeddedAnnotations(url string) embeddedListing {
	result := embeddedListing{}
	if !strings.Contains(url, `"address:`) {
		return result
	}

	result.address = sliceBetween(url, `"address:`, `"price:`)
	result.price = sliceBetween(url, `"price:`, `"bedrooms:`)
	result.bedrooms = sliceBetween(url, `"bedrooms:`, `"bathrooms:`)

	bathroomsEnd := `"match_reason:`
	if strings.Contains(url, `"key_features:`) {
		bathroomsEnd = `"key_features:`
	}
	result.bathrooms = sliceBetween(url, `"bathrooms:`, bathroomsEnd)

	return result
}

// sliceBetween returns the trimmed text between two markers, or empty when
// either marker is missing
func sliceBetween(s, startMarker, endMarker string) string {
	start := strings.Index(s, startMarker)
	if start < 0 {
		return ""
	}
	start += len(startMarker)
	end := strings.Index(s[start:], endMarker)
	if end < 0 {
		return ""
	}
	value := strings.TrimSpace(s[start : start+end])
	return strings.Trim(value, `"`)
}

// formatThousands renders an integer with comma separators
func formatThousands(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := fmt.Sprintf("%d", n)
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)

	return sign + strings.Join(parts, ",")
}

// present reports whether an optional count is set and positive
func present(v *int) bool {
	return v != nil && *v > 0
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
