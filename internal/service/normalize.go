package service

import (
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
	"github.com/LouisDeconinck/ai-real-estate-agent/internal/utils"
)

// NormalizeProperties flattens raw listing detail payloads into canonical
// property records. The raw records are deeply nested and inconsistently
// populated; every traversal goes through the safe accessors so malformed
// data resolves to field-level absence, never a fault.
func NormalizeProperties(items []map[string]interface{}) []model.PropertyRecord {
	records := make([]model.PropertyRecord, 0, len(items))
	for _, item := range items {
		records = append(records, normalizeProperty(item))
	}
	return records
}

// normalizeProperty flattens one raw detail payload
func normalizeProperty(item map[string]interface{}) model.PropertyRecord {
	record := model.PropertyRecord{
		City:          firstString(utils.SafeString(item, "city"), utils.SafeString(item, "address", "city")),
		State:         firstString(utils.SafeString(item, "state"), utils.SafeString(item, "address", "state")),
		StreetAddress: firstString(utils.SafeString(item, "streetAddress"), utils.SafeString(item, "address", "streetAddress")),
		Zipcode:       firstString(utils.SafeString(item, "zipcode"), utils.SafeString(item, "address", "zipcode")),
		Country:       utils.SafeString(item, "country"),
		YearBuilt:     utils.SafeInt(item, "yearBuilt"),
		Description:   utils.SafeString(item, "description"),
	}

	if u := firstString(utils.SafeString(item, "addressOrUrlFromInput"), utils.SafeString(item, "url")); u != nil {
		record.URL = *u
	}

	record.Bedrooms, record.Bathrooms, record.Price = resolveBedsBathsPrice(item)

	// Feature phrases live under the first home insight
	if insights := utils.SafeSlice(item, "homeinsights", "insights"); len(insights) > 0 {
		record.Features = utils.SafeStringSlice(insights[0], "phrases")
	}

	record.Facts = extractFacts(item)
	record.Amenities = utils.SafeStringSlice(item, "amenityDetails", "customAmenities", "rawAmenities")
	record.CommunityAmenities = utils.SafeStringSlice(item, "commonUnitAmenities")

	// Appliances come from two independent sources; duplicates across the
	// two lists collapse
	buildingAppliances := utils.SafeStringSlice(item, "buildingAttributes", "appliances")
	resoAppliances := utils.SafeStringSlice(item, "resoFacts", "appliances")
	record.Appliances = unionStrings(buildingAppliances, resoAppliances)

	record.BikeScore = utils.SafeInt(item, "bikescore", "bikescore")
	record.TransitScore = utils.SafeInt(item, "transitScore", "transit_score")
	record.WalkScore = utils.SafeInt(item, "walkScore", "walk_score")

	return record
}

// resolveBedsBathsPrice derives bedroom count, bathroom count, and price.
// Multi-unit buildings report per-unit floor plans: average over the plans
// that carry both a bed and a bath value, truncating to integers. With no
// qualifying plans (or no floor-plan data at all) the record's own
// top-level fields are used instead.
func resolveBedsBathsPrice(item map[string]interface{}) (beds, baths, price *int) {
	floorPlans := utils.SafeSlice(item, "floorPlans")
	if len(floorPlans) > 0 {
		totalBeds := 0.0
		totalBaths := 0.0
		totalPrice := 0.0
		count := 0

		for _, plan := range floorPlans {
			planBeds := utils.SafeFloat(plan, "beds")
			planBaths := utils.SafeFloat(plan, "baths")
			if planBeds == nil || planBaths == nil {
				continue
			}
			count++
			totalBeds += *planBeds
			totalBaths += *planBaths
			// Use minPrice or maxPrice, whichever is available
			if minPrice := utils.SafeFloat(plan, "minPrice"); minPrice != nil {
				totalPrice += *minPrice
			} else if maxPrice := utils.SafeFloat(plan, "maxPrice"); maxPrice != nil {
				totalPrice += *maxPrice
			}
		}

		if count > 0 {
			return intPtrOf(int(totalBeds / float64(count))),
				intPtrOf(int(totalBaths / float64(count))),
				intPtrOf(int(totalPrice / float64(count)))
		}
	}

	return utils.SafeInt(item, "bedrooms"),
		utils.SafeInt(item, "bathrooms"),
		utils.SafeInt(item, "price")
}

// extractFacts pulls the at-a-glance label/value pairs
func extractFacts(item map[string]interface{}) []model.Fact {
	rawFacts := utils.SafeSlice(item, "resoFacts", "atAGlanceFacts")
	if rawFacts == nil {
		return nil
	}
	facts := make([]model.Fact, 0, len(rawFacts))
	for _, rawFact := range rawFacts {
		fact := model.Fact{}
		if label := utils.SafeString(rawFact, "factLabel"); label != nil {
			fact.Label = *label
		}
		if value := utils.SafeString(rawFact, "factValue"); value != nil {
			fact.Value = *value
		}
		if fact.Label != "" || fact.Value != "" {
			facts = append(facts, fact)
		}
	}
	if len(facts) == 0 {
		return nil
	}
	return facts
}

// unionStrings merges string lists keeping first-seen order and dropping
// exact duplicates
func unionStrings(lists ...[]string) []string {
	var result []string
	seen := map[string]bool{}
	for _, list := range lists {
		for _, s := range list {
			if seen[s] {
				continue
			}
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}

// firstString returns the first non-nil, non-empty value
func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil && *v != "" {
			return v
		}
	}
	return nil
}

func intPtrOf(v int) *int {
	return &v
}
