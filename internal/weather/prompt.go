package weather

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Insight types accepted by GeneratePrompt.
const (
	InsightGeneral    = "general"
	InsightClothing   = "clothing"
	InsightActivities = "activities"
	InsightTravel     = "travel"
	InsightHealth     = "health"
)

var insightInstructions = map[string]string{
	InsightClothing: "Provide specific clothing recommendations based on the weather conditions. " +
		"Consider temperature, precipitation, wind, and humidity. " +
		"Be practical and specific about layering, footwear, and accessories.",
	InsightActivities: "Suggest outdoor and indoor activities suitable for these weather conditions. " +
		"Consider safety, comfort, and seasonal appropriateness. " +
		"Mention any activities to avoid due to weather.",
	InsightTravel: "Provide travel advice based on these weather conditions. " +
		"Include transportation considerations, packing suggestions, " +
		"and any weather-related travel alerts or precautions.",
	InsightHealth: "Analyze health implications of these weather conditions. " +
		"Consider air quality, UV index, temperature effects, " +
		"and provide health and wellness recommendations.",
	InsightGeneral: "Provide a comprehensive weather analysis including trends, " +
		"comfort levels, and general recommendations for the next few days.",
}

// GeneratePrompt assembles an AI analysis prompt from current
// conditions, optional forecast data, and the requested insight type.
// Unknown insight types get the general instruction.
func GeneratePrompt(current map[string]any, forecast []any, insightType string) string {
	location := "this location"
	if name, ok := current["location"].(string); ok && name != "" {
		location = name
	}

	parts := []string{
		fmt.Sprintf("Analyze the weather for %s.", location),
		fmt.Sprintf("Current conditions: %s", compactJSON(current)),
	}
	if len(forecast) > 0 {
		parts = append(parts, fmt.Sprintf("5-day forecast: %s", compactJSON(forecast)))
	}

	instruction, ok := insightInstructions[insightType]
	if !ok {
		instruction = insightInstructions[InsightGeneral]
	}
	parts = append(parts, instruction)
	parts = append(parts, "Keep your response concise, practical, and informative. Focus on actionable insights.")

	return strings.Join(parts, "\n\n")
}

func compactJSON(value any) string {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}
