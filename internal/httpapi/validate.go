package httpapi

import (
	"fmt"
	"strings"
)

// Validation reports whether a response body has the expected shape.
type Validation struct {
	// Valid is true when no checks failed.
	Valid bool `json:"valid"`
	// MissingFields lists required fields that were absent.
	MissingFields []string `json:"missing_fields"`
	// Errors carries human-readable failure descriptions.
	Errors []string `json:"errors"`
}

// ValidateResponse checks that data is a JSON object containing every
// required field. Dotted names check nested objects ("main.temp");
// unlike extraction paths, no sequence indexing is applied here.
func ValidateResponse(data any, requiredFields []string, responseType string) Validation {
	result := Validation{
		Valid:         true,
		MissingFields: []string{},
		Errors:        []string{},
	}

	obj, ok := data.(map[string]any)
	if responseType == "" || responseType == "json" {
		if !ok {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("expected object, got %T", data))
			return result
		}
	}
	if !ok {
		return result
	}

	for _, field := range requiredFields {
		if !hasNestedField(obj, field) {
			result.MissingFields = append(result.MissingFields, field)
		}
	}

	if len(result.MissingFields) > 0 {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("missing required fields: %s", strings.Join(result.MissingFields, ", ")))
	}
	return result
}

func hasNestedField(obj map[string]any, field string) bool {
	current := any(obj)
	for _, part := range strings.Split(field, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		current, ok = m[part]
		if !ok {
			return false
		}
	}
	return true
}
