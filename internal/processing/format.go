// Package processing implements the data transformation tools:
// formatting, derived metrics, and AI completions.
package processing

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"text/template"
)

// Format types accepted by FormatData.
const (
	FormatJSON            = "json"
	FormatWeatherCurrent  = "weather_current"
	FormatWeatherForecast = "weather_forecast"
	FormatSummary         = "summary"
	FormatDetailed        = "detailed"
	FormatTable           = "table"
)

// FormatData renders data as human-readable text. Unknown format
// types fall back to the custom template when one is given, then to
// plain key-value lines. Formatting never fails: errors come back as
// the rendered text.
func FormatData(data any, formatType, customTemplate string) string {
	switch formatType {
	case FormatJSON:
		out, err := json.MarshalIndent(data, "", "  ")
		if err != nil {
			return fmt.Sprintf("Formatting error: %v", err)
		}
		return string(out)
	case FormatWeatherCurrent:
		return formatCurrentWeather(asObject(data))
	case FormatWeatherForecast:
		seq, _ := data.([]any)
		return formatForecast(seq)
	case FormatSummary:
		return formatSummary(asObject(data))
	case FormatDetailed:
		return formatDetailed(asObject(data))
	case FormatTable:
		return formatTable(asObject(data))
	}
	if customTemplate != "" {
		return formatWithTemplate(asObject(data), customTemplate)
	}
	return formatDefault(asObject(data))
}

func asObject(data any) map[string]any {
	if obj, ok := data.(map[string]any); ok {
		return obj
	}
	return nil
}

func formatCurrentWeather(data map[string]any) string {
	get := func(key string) any {
		if v, ok := data[key]; ok && v != nil {
			return v
		}
		return "N/A"
	}
	location := "Unknown"
	if v, ok := data["location"].(string); ok {
		location = v
	}
	return fmt.Sprintf(`Current weather in %s:
Temperature: %v°C
Condition: %v
Humidity: %v%%
Wind: %v m/s`,
		location, get("temp"), get("description"), get("humidity"), get("wind_speed"))
}

func formatForecast(days []any) string {
	if len(days) == 0 {
		return "No forecast data available"
	}
	var b strings.Builder
	b.WriteString("5-day weather forecast:\n")
	for _, raw := range days {
		day := asObject(raw)
		get := func(key string) any {
			if v, ok := day[key]; ok && v != nil {
				return v
			}
			return "N/A"
		}
		fmt.Fprintf(&b, "\n%v: %v°/%v° - %v", get("date"), get("temp_high"), get("temp_low"), get("description"))
	}
	return b.String()
}

func formatSummary(data map[string]any) string {
	items := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		switch data[key].(type) {
		case string, float64, int, bool:
			items = append(items, fmt.Sprintf("%s: %v", key, data[key]))
		}
	}
	return strings.Join(items, "; ")
}

func formatDetailed(data map[string]any) string {
	var lines []string
	for _, key := range sortedKeys(data) {
		switch v := data[key].(type) {
		case map[string]any:
			lines = append(lines, titleWord(key)+":")
			for _, sub := range sortedKeys(v) {
				lines = append(lines, fmt.Sprintf("  %s: %v", sub, v[sub]))
			}
		case []any:
			lines = append(lines, fmt.Sprintf("%s: %d items", titleWord(key), len(v)))
		default:
			lines = append(lines, fmt.Sprintf("%s: %v", titleWord(key), v))
		}
	}
	return strings.Join(lines, "\n")
}

func formatTable(data map[string]any) string {
	if len(data) == 0 {
		return "No data"
	}
	width := 0
	for key := range data {
		if len(key) > width {
			width = len(key)
		}
	}
	var lines []string
	for _, key := range sortedKeys(data) {
		lines = append(lines, fmt.Sprintf("%-*s | %v", width, key, data[key]))
	}
	return strings.Join(lines, "\n")
}

func formatWithTemplate(data map[string]any, raw string) string {
	tmpl, err := template.New("custom").Option("missingkey=error").Parse(raw)
	if err != nil {
		return fmt.Sprintf("Template error: %v", err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("Template error: %v", err)
	}
	return b.String()
}

func formatDefault(data map[string]any) string {
	lines := make([]string, 0, len(data))
	for _, key := range sortedKeys(data) {
		lines = append(lines, fmt.Sprintf("%s: %v", key, data[key]))
	}
	return strings.Join(lines, "\n")
}

func sortedKeys(data map[string]any) []string {
	keys := make([]string, 0, len(data))
	for key := range data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
