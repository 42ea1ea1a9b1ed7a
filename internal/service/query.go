package service

import (
	"encoding/json"
	"net/url"

	"github.com/LouisDeconinck/ai-real-estate-agent/internal/model"
)

const (
	forSaleBaseURL = "https://www.zillow.com/homes/for_sale/?searchQueryState="
	forRentBaseURL = "https://www.zillow.com/homes/for_rent/?searchQueryState="
)

// BuildSearchURL constructs a fully encoded listing search URL from the
// extracted parameters and the resolved map bounds. Bounds may be nil:
// the query then omits the mapBounds sub-document entirely instead of
// carrying fabricated coordinates.
//
// The short filter keys are the contract with the listing source's query
// syntax and must not be renamed.
func BuildSearchURL(params *model.SearchParameters, bounds *model.GeoBounds) string {
	baseURL := forSaleBaseURL
	if params.ForRent {
		baseURL = forRentBaseURL
	}

	filterState := map[string]interface{}{
		"sort": map[string]interface{}{"value": "globalrelevanceex"},
		"fsba": map[string]interface{}{"value": false},
		"fsbo": map[string]interface{}{"value": false},
		"nc":   map[string]interface{}{"value": false},
		"cmsn": map[string]interface{}{"value": false},
		"auc":  map[string]interface{}{"value": false},
		"fore": map[string]interface{}{"value": false},
	}

	// Price range
	if params.PriceMin != nil || params.PriceMax != nil {
		price := map[string]interface{}{}
		if params.PriceMin != nil {
			price["min"] = *params.PriceMin
		}
		if params.PriceMax != nil {
			price["max"] = *params.PriceMax
		}
		filterState["price"] = price
	}

	// Basic property features
	if params.BedsMin != nil {
		filterState["beds"] = map[string]interface{}{"min": *params.BedsMin}
	}
	if params.BathsMin != nil {
		filterState["baths"] = map[string]interface{}{"min": *params.BathsMin}
	}
	if params.SqftMin != nil || params.SqftMax != nil {
		sqft := map[string]interface{}{}
		if params.SqftMin != nil {
			sqft["min"] = *params.SqftMin
		}
		if params.SqftMax != nil {
			sqft["max"] = *params.SqftMax
		}
		filterState["sqft"] = sqft
	}

	// Key amenities: a key is added only when the flag is present, so the
	// source can distinguish "unset" from "explicitly false"
	addFlag(filterState, "gar", params.Garage)
	addFlag(filterState, "ac", params.AC)
	addFlag(filterState, "pool", params.Pool)
	addFlag(filterState, "sto", params.SingleStoryOnly)

	// Views and location features
	addFlag(filterState, "wat", params.Waterfront)
	addFlag(filterState, "cityv", params.CityView)
	addFlag(filterState, "mouv", params.MountainView)

	// Rental-specific filters never leak into sale queries
	if params.ForRent {
		filterState["fr"] = map[string]interface{}{"value": true}
		addFlag(filterState, "np", params.PetsAllowed)
		addFlag(filterState, "fur", params.Furnished)
		addFlag(filterState, "uti", params.UtilitiesIncluded)
		addFlag(filterState, "par", params.OnsiteParking)
	}

	searchQueryState := map[string]interface{}{
		"pagination":      map[string]interface{}{},
		"usersSearchTerm": params.SearchTerm,
		"filterState":     filterState,
		"isListVisible":   true,
		"isMapVisible":    bounds != nil,
	}
	if bounds != nil {
		searchQueryState["mapBounds"] = map[string]interface{}{
			"west":  bounds.West,
			"east":  bounds.East,
			"south": bounds.South,
			"north": bounds.North,
		}
	}

	// Map keys marshal in sorted order, so the output is deterministic
	encoded, err := json.Marshal(searchQueryState)
	if err != nil {
		// Only fixed keys and primitive values above; this cannot happen
		return baseURL
	}

	return baseURL + url.QueryEscape(string(encoded))
}

// addFlag adds a {"value": bool} entry for a present optional flag
func addFlag(filterState map[string]interface{}, key string, flag *bool) {
	if flag == nil {
		return
	}
	filterState[key] = map[string]interface{}{"value": *flag}
}
