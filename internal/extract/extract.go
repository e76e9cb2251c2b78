// Package extract resolves dotted path expressions against nested
// JSON-like values.
//
// A path is a dot-separated list of segments. A segment made entirely of
// digits is always interpreted as a sequence index, never as a map key,
// so map keys that are pure digits cannot be addressed by this syntax.
package extract

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Extractor maps fields out of decoded JSON values. The zero value is
// usable; Logger, when set, records per-field resolution failures.
type Extractor struct {
	Logger *slog.Logger
}

// Fields resolves every path in mapping against source. Each field is
// resolved independently: a path that fails yields nil for that field
// and never affects the others. The result always contains one entry
// per mapping key.
func (e Extractor) Fields(source any, mapping map[string]string) map[string]any {
	out := make(map[string]any, len(mapping))
	for field, path := range mapping {
		value, err := Resolve(source, path)
		if err != nil {
			if e.Logger != nil {
				e.Logger.Debug("field resolution failed",
					"field", field,
					"path", path,
					"error", err,
				)
			}
			out[field] = nil
			continue
		}
		out[field] = value
	}
	return out
}

// Resolve walks a single dotted path against source and returns the
// value at its end. There is no partial result: either every segment
// resolves or an error describes the first segment that did not.
func Resolve(source any, path string) (any, error) {
	current := source
	for _, segment := range strings.Split(path, ".") {
		if isIndex(segment) {
			idx, err := strconv.Atoi(segment)
			if err != nil {
				return nil, fmt.Errorf("segment %q: %w", segment, err)
			}
			seq, ok := current.([]any)
			if !ok {
				return nil, fmt.Errorf("segment %q: want sequence, have %T", segment, current)
			}
			if idx >= len(seq) {
				return nil, fmt.Errorf("segment %q: index out of range (len %d)", segment, len(seq))
			}
			current = seq[idx]
			continue
		}

		obj, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("segment %q: want map, have %T", segment, current)
		}
		value, ok := obj[segment]
		if !ok {
			return nil, fmt.Errorf("segment %q: key not found", segment)
		}
		current = value
	}
	return current, nil
}

// isIndex reports whether the segment is a non-negative integer
// literal. Anything else, including "-1" or "+1", is a map key.
func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
