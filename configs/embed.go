package configs

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed *.yaml
var embedded embed.FS

// DefaultPolicy is the embedded policy filename used when no policy
// path is configured.
const DefaultPolicy = "policy.yaml"

// Load returns an embedded YAML file by name.
func Load(name string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("embedded config name is empty")
	}
	data, err := fs.ReadFile(embedded, name)
	if err != nil {
		return nil, fmt.Errorf("read embedded config %q: %w", name, err)
	}
	return data, nil
}
