package processing

import "log/slog"

// Calculation names a derived value and how to compute it from input
// fields.
type Calculation struct {
	// Name keys the result.
	Name string `json:"name"`
	// Operation is one of subtract, add, average, max, min.
	Operation string `json:"operation"`
	// Fields names the input fields the operation reads.
	Fields []string `json:"fields"`
}

// CalculateMetrics evaluates each calculation against input. A
// calculation with an unknown operation or too few fields yields nil
// under its name; missing input fields read as zero.
func CalculateMetrics(input map[string]any, calculations []Calculation, logger *slog.Logger) map[string]any {
	results := make(map[string]any, len(calculations))
	for _, calc := range calculations {
		name := calc.Name
		if name == "" {
			name = "unknown"
		}

		values := make([]float64, 0, len(calc.Fields))
		for _, field := range calc.Fields {
			values = append(values, toFloat(input[field]))
		}

		switch {
		case calc.Operation == "subtract" && len(values) == 2:
			results[name] = values[0] - values[1]
		case calc.Operation == "add" && len(values) >= 2:
			results[name] = sum(values)
		case calc.Operation == "average" && len(values) >= 2:
			results[name] = sum(values) / float64(len(values))
		case calc.Operation == "max" && len(values) >= 2:
			results[name] = maxOf(values)
		case calc.Operation == "min" && len(values) >= 2:
			results[name] = minOf(values)
		default:
			if logger != nil {
				logger.Warn("unsupported calculation", "name", name, "operation", calc.Operation, "fields", len(values))
			}
			results[name] = nil
		}
	}
	return results
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func maxOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v > out {
			out = v
		}
	}
	return out
}

func minOf(values []float64) float64 {
	out := values[0]
	for _, v := range values[1:] {
		if v < out {
			out = v
		}
	}
	return out
}
