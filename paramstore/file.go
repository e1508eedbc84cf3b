package paramstore

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parameter is a single named value in a parameter file.
type Parameter struct {
	Name  string `json:"name" mapstructure:"name"`
	Value string `json:"value" mapstructure:"value"`
}

// LoadFile loads parameters from a JSON file laid out like an SSM export:
//
//	[
//	  {"name": "/showroom/openai", "value": "sk-..."},
//	  {"name": "/showroom/s3-bucket", "value": "my-bucket"}
//	]
//
// Entries with an empty name are skipped. Later entries win on duplicates.
func LoadFile(path string) (*MapStore, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}

	var params []Parameter
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("parse parameter file: %w", err)
	}

	values := make(map[string]string, len(params))
	for _, p := range params {
		if p.Name != "" {
			values[p.Name] = p.Value
		}
	}

	return NewMapStore(values), nil
}
