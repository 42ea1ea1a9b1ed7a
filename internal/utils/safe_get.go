package utils

// Safe traversal over untyped JSON trees (map/slice/scalar variants as
// produced by encoding/json). Every accessor short-circuits to an absent
// value at the first missing or non-container step instead of panicking.

// SafeGet walks nested maps along keys and returns the value at the end of
// the path, or nil if any intermediate step is missing or not a map.
func SafeGet(node interface{}, keys ...string) interface{} {
	current := node
	for _, key := range keys {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current, ok = obj[key]
		if !ok || current == nil {
			return nil
		}
	}
	return current
}

// SafeString returns the string at the path, or nil when absent or not a string
func SafeString(node interface{}, keys ...string) *string {
	value, ok := SafeGet(node, keys...).(string)
	if !ok {
		return nil
	}
	return &value
}

// SafeInt returns the number at the path truncated to an int, or nil when
// absent. JSON numbers decode as float64, so both forms are accepted.
func SafeInt(node interface{}, keys ...string) *int {
	switch v := SafeGet(node, keys...).(type) {
	case float64:
		value := int(v)
		return &value
	case int:
		return &v
	}
	return nil
}

// SafeFloat returns the number at the path, or nil when absent
func SafeFloat(node interface{}, keys ...string) *float64 {
	switch v := SafeGet(node, keys...).(type) {
	case float64:
		return &v
	case int:
		value := float64(v)
		return &value
	}
	return nil
}

// SafeSlice returns the array at the path, or nil when absent or not an array
func SafeSlice(node interface{}, keys ...string) []interface{} {
	value, ok := SafeGet(node, keys...).([]interface{})
	if !ok {
		return nil
	}
	return value
}

// SafeMap returns the object at the path, or nil when absent or not an object
func SafeMap(node interface{}, keys ...string) map[string]interface{} {
	value, ok := SafeGet(node, keys...).(map[string]interface{})
	if !ok {
		return nil
	}
	return value
}

// SafeStringSlice returns the array at the path keeping only string
// elements, or nil when the array itself is absent
func SafeStringSlice(node interface{}, keys ...string) []string {
	items := SafeSlice(node, keys...)
	if items == nil {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
