package utils

import (
	"testing"
)

func testNode() map[string]interface{} {
	return map[string]interface{}{
		"address": map[string]interface{}{
			"city":    "Austin",
			"zipcode": "78701",
		},
		"price":     float64(450000),
		"bedrooms":  3,
		"walkScore": map[string]interface{}{"walk_score": float64(87)},
		"amenities": []interface{}{"Pool", "Gym", float64(1), "Sauna"},
		"empty":     nil,
	}
}

func TestSafeGet(t *testing.T) {
	node := testNode()

	tests := []struct {
		name string
		keys []string
		want interface{}
	}{
		{"Top-level key", []string{"price"}, float64(450000)},
		{"Nested key", []string{"address", "city"}, "Austin"},
		{"Missing key", []string{"missing"}, nil},
		{"Missing nested key", []string{"address", "missing"}, nil},
		{"Path through a scalar", []string{"price", "anything"}, nil},
		{"Explicit null", []string{"empty"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeGet(node, tt.keys...)
			if got != tt.want {
				t.Errorf("SafeGet() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSafeString(t *testing.T) {
	node := testNode()

	if got := SafeString(node, "address", "city"); got == nil || *got != "Austin" {
		t.Errorf("SafeString() = %v, want Austin", got)
	}
	if got := SafeString(node, "price"); got != nil {
		t.Errorf("Expected nil for a non-string value, got %v", *got)
	}
	if got := SafeString(node, "missing"); got != nil {
		t.Errorf("Expected nil for a missing key, got %v", *got)
	}
}

func TestSafeInt(t *testing.T) {
	node := testNode()

	// JSON numbers decode as float64
	if got := SafeInt(node, "price"); got == nil || *got != 450000 {
		t.Errorf("SafeInt() = %v, want 450000", got)
	}
	// Native ints are accepted too
	if got := SafeInt(node, "bedrooms"); got == nil || *got != 3 {
		t.Errorf("SafeInt() = %v, want 3", got)
	}
	if got := SafeInt(node, "address", "city"); got != nil {
		t.Errorf("Expected nil for a non-numeric value, got %v", *got)
	}
}

func TestSafeFloat(t *testing.T) {
	node := testNode()

	if got := SafeFloat(node, "walkScore", "walk_score"); got == nil || *got != 87 {
		t.Errorf("SafeFloat() = %v, want 87", got)
	}
	if got := SafeFloat(node, "missing"); got != nil {
		t.Errorf("Expected nil for a missing key, got %v", *got)
	}
}

func TestSafeSlice(t *testing.T) {
	node := testNode()

	if got := SafeSlice(node, "amenities"); len(got) != 4 {
		t.Errorf("SafeSlice() returned %d elements, want 4", len(got))
	}
	if got := SafeSlice(node, "address"); got != nil {
		t.Errorf("Expected nil for a non-array value, got %v", got)
	}
}

func TestSafeMap(t *testing.T) {
	node := testNode()

	if got := SafeMap(node, "address"); got == nil || got["city"] != "Austin" {
		t.Errorf("SafeMap() = %v, want the address object", got)
	}
	if got := SafeMap(node, "amenities"); got != nil {
		t.Errorf("Expected nil for a non-object value, got %v", got)
	}
}

func TestSafeStringSlice(t *testing.T) {
	node := testNode()

	got := SafeStringSlice(node, "amenities")
	if len(got) != 3 {
		t.Fatalf("SafeStringSlice() returned %d elements, want 3 (non-strings dropped)", len(got))
	}
	if got[0] != "Pool" || got[1] != "Gym" || got[2] != "Sauna" {
		t.Errorf("Unexpected elements: %v", got)
	}

	if got := SafeStringSlice(node, "missing"); got != nil {
		t.Errorf("Expected nil for a missing array, got %v", got)
	}
}
