// Package render expands environment references in policy files
// before YAML parsing, so secrets and host lists can vary per
// deployment without editing the file.
package render

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"
)

// File loads and renders a policy template from disk.
func File(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	return Bytes(path, raw)
}

// Bytes renders a policy template from raw bytes. Referencing an
// environment variable that is unset via "env" is an error; use
// "envOr" to supply a fallback.
func Bytes(name string, raw []byte) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		name = "policy"
	}

	missing := map[string]struct{}{}
	funcs := template.FuncMap{
		"env": func(key string) string {
			value, ok := os.LookupEnv(key)
			if !ok {
				missing[key] = struct{}{}
			}
			return value
		},
		"envOr": func(key, def string) string {
			if value, ok := os.LookupEnv(key); ok {
				return value
			}
			return def
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
		"join":  strings.Join,
	}

	tmpl, err := template.New(name).Funcs(funcs).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse policy template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any{}); err != nil {
		return nil, fmt.Errorf("render policy template: %w", err)
	}
	if len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for key := range missing {
			names = append(names, key)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("missing env vars: %s", strings.Join(names, ", "))
	}

	return buf.Bytes(), nil
}
