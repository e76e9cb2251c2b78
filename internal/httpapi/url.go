package httpapi

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL joins a base URL and endpoint with exactly one slash and
// appends encoded query parameters. Nil parameter values are skipped.
func BuildURL(baseURL, endpoint string, params map[string]any) (string, error) {
	if strings.TrimSpace(baseURL) == "" {
		return "", fmt.Errorf("base url is empty")
	}

	full := strings.TrimRight(baseURL, "/")
	endpoint = strings.TrimLeft(endpoint, "/")
	if endpoint != "" {
		full = full + "/" + endpoint
	}

	if _, err := url.Parse(full); err != nil {
		return "", fmt.Errorf("url construction failed: %w", err)
	}

	query := url.Values{}
	for key, value := range params {
		if value == nil {
			continue
		}
		query.Set(key, fmt.Sprint(value))
	}
	if encoded := query.Encode(); encoded != "" {
		full = full + "?" + encoded
	}
	return full, nil
}
