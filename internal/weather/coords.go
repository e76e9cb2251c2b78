// Package weather holds the weather-specific tools: coordinate
// parsing, derived metrics, analysis prompts, and location validation.
package weather

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Coordinates locates a place. Lat and Lon are nil when the location
// could not be resolved locally and should be passed to the upstream
// API by name.
type Coordinates struct {
	Lat     *float64 `json:"lat"`
	Lon     *float64 `json:"lon"`
	Name    string   `json:"name"`
	Country string   `json:"country"`
}

var coordPattern = regexp.MustCompile(`^(-?\d+\.?\d*),\s*(-?\d+\.?\d*)$`)

// A small gazetteer for common cities; everything else resolves
// upstream by name.
var knownCities = map[string]Coordinates{
	"seattle":  {Lat: ptr(47.6062), Lon: ptr(-122.3321), Name: "Seattle", Country: "US"},
	"london":   {Lat: ptr(51.5074), Lon: ptr(-0.1278), Name: "London", Country: "GB"},
	"tokyo":    {Lat: ptr(35.6762), Lon: ptr(139.6503), Name: "Tokyo", Country: "JP"},
	"new york": {Lat: ptr(40.7128), Lon: ptr(-74.0060), Name: "New York", Country: "US"},
	"paris":    {Lat: ptr(48.8566), Lon: ptr(2.3522), Name: "Paris", Country: "FR"},
}

// ParseCoordinates converts a location string to coordinates. A
// "lat,lon" literal is parsed directly; known city names come from the
// local table; anything else returns a name-only result.
func ParseCoordinates(location string) (Coordinates, error) {
	trimmed := strings.TrimSpace(location)

	if match := coordPattern.FindStringSubmatch(trimmed); match != nil {
		lat, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			return Coordinates{}, fmt.Errorf("location parsing failed: %w", err)
		}
		lon, err := strconv.ParseFloat(match[2], 64)
		if err != nil {
			return Coordinates{}, fmt.Errorf("location parsing failed: %w", err)
		}
		return Coordinates{
			Lat:     &lat,
			Lon:     &lon,
			Name:    fmt.Sprintf("Location(%v,%v)", lat, lon),
			Country: "Unknown",
		}, nil
	}

	if known, ok := knownCities[strings.ToLower(trimmed)]; ok {
		return known, nil
	}

	return Coordinates{Name: location, Country: "Unknown"}, nil
}

func ptr(v float64) *float64 { return &v }
