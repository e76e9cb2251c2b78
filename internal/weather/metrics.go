package weather

import (
	"math"
	"strings"
)

// Metrics are values derived from raw observations.
type Metrics struct {
	// HeatIndex is the felt temperature in warm conditions.
	HeatIndex float64 `json:"heat_index"`
	// WindChill is the felt temperature in cold wind.
	WindChill float64 `json:"wind_chill"`
	// ComfortLevel is a coarse human-readable classification.
	ComfortLevel string `json:"comfort_level"`
	// WindDirectionText is a 16-point compass direction.
	WindDirectionText string `json:"wind_direction_text"`
}

var compassPoints = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// CalculateMetrics derives heat index, wind chill, comfort level, and
// wind direction text. Temperature is Celsius, humidity a percentage,
// wind speed m/s, wind direction degrees (nil when unknown).
func CalculateMetrics(temperature float64, humidity int, windSpeed float64, windDirection *int) Metrics {
	m := Metrics{HeatIndex: temperature, WindChill: temperature}

	// Heat index only matters in warm conditions.
	if temperature >= 27 {
		m.HeatIndex = round1(temperature + 0.5*(float64(humidity)-40))
	}

	// Wind chill only matters in cold moving air.
	if temperature <= 10 && windSpeed > 1 {
		wind := math.Pow(windSpeed, 0.16)
		m.WindChill = round1(13.12 + 0.6215*temperature - 11.37*wind + 0.3965*temperature*wind)
	}

	m.ComfortLevel = comfortLevel(m.HeatIndex, humidity, windSpeed)

	if windDirection != nil {
		// Degrees may be negative; keep the index in [0, 16).
		idx := ((int((float64(*windDirection)+11.25)/22.5) % 16) + 16) % 16
		m.WindDirectionText = compassPoints[idx]
	} else {
		m.WindDirectionText = "Unknown"
	}

	return m
}

func comfortLevel(feltTemp float64, humidity int, windSpeed float64) string {
	var level string
	switch {
	case feltTemp < 0:
		level = "Very Cold"
	case feltTemp < 10:
		level = "Cold"
	case feltTemp < 18:
		level = "Cool"
	case feltTemp < 24:
		level = "Comfortable"
	case feltTemp < 28:
		level = "Warm"
	case feltTemp < 32:
		level = "Hot"
	default:
		level = "Very Hot"
	}

	if humidity > 80 {
		if strings.Contains(level, "Warm") || strings.Contains(level, "Hot") {
			level += " & Humid"
		}
	} else if humidity < 30 {
		level += " & Dry"
	}

	if windSpeed > 10 {
		level += " & Windy"
	}
	return level
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
