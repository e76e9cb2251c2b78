package weather

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LocationValidation is the result of standardizing user location
// input.
type LocationValidation struct {
	// Valid is true when the input passed all checks.
	Valid bool `json:"valid"`
	// Standardized is the cleaned, title-cased location.
	Standardized string `json:"standardized"`
	// Suggestions explains failures or offers alternatives.
	Suggestions []string `json:"suggestions"`
}

var locationPattern = regexp.MustCompile(`^[a-zA-Z0-9\s\-',\.]+$`)

var titleCaser = cases.Title(language.English)

// Title-casing mangles common abbreviations; fix them back up. Order
// matters, so this is a slice, not a map.
var abbreviations = []struct{ from, to string }{
	{" Usa", " USA"},
	{" Uk", " UK"},
	{" Us", " US"},
	{"Nyc", "NYC"},
	{"La ", "LA "},
}

// ValidateLocation checks and standardizes a user-provided location
// string. It never fails: invalid input comes back with Valid false
// and a suggestion.
func ValidateLocation(location string) LocationValidation {
	result := LocationValidation{Suggestions: []string{}}

	cleaned := strings.TrimSpace(location)
	switch {
	case cleaned == "":
		result.Suggestions = append(result.Suggestions, "Please provide a valid location name")
		return result
	case len(cleaned) < 2:
		result.Suggestions = append(result.Suggestions, "Location name too short")
		return result
	case len(cleaned) > 100:
		result.Suggestions = append(result.Suggestions, "Location name too long")
		return result
	case !locationPattern.MatchString(cleaned):
		result.Suggestions = append(result.Suggestions, "Location contains invalid characters")
		return result
	}

	standardized := titleCaser.String(cleaned)
	for _, abbrev := range abbreviations {
		standardized = strings.ReplaceAll(standardized, abbrev.from, abbrev.to)
	}

	result.Valid = true
	result.Standardized = standardized
	return result
}
