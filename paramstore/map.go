package paramstore

import (
	"context"
	"fmt"
)

// MapStore retrieves parameters from an in-memory map.
// Suitable for parameter files and tests.
type MapStore struct {
	params map[string]string
}

// NewMapStore creates a map-based store with the given name to value mapping.
func NewMapStore(params map[string]string) *MapStore {
	return &MapStore{params: params}
}

// Lookup retrieves the value for name from the map. decrypt is ignored.
func (s *MapStore) Lookup(ctx context.Context, name string, _ bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	value, found := s.params[name]
	if !found {
		return "", fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return value, nil
}
