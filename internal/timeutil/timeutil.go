package timeutil

import (
	"strings"
	"time"
)

// ParseDurationOrDefault parses duration and returns def on empty or invalid value.
func ParseDurationOrDefault(value string, def time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return def
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return parsed
}

// Seconds converts a whole-second count to a Duration. Zero and
// negative counts pass through unchanged so callers can keep the
// "already expired" semantics of non-positive TTLs.
func Seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
