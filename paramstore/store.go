// Package paramstore provides named parameter lookups used to resolve
// application settings.
//
// Three implementations are available: MapStore (in memory), the JSON file
// loader that feeds a MapStore, and SSMStore backed by AWS Systems Manager
// Parameter Store.
package paramstore

import (
	"context"
	"strings"
)

// Store resolves a parameter by its full name (for example "/showroom/openai").
// decrypt asks the backend to decrypt SecureString values; stores without
// encryption ignore it. A missing parameter is reported as ErrNotFound.
type Store interface {
	Lookup(ctx context.Context, name string, decrypt bool) (string, error)
}

// Path builds the parameter name for key under the app namespace:
// Path("showroom", "openai") is "/showroom/openai".
func Path(app, key string) string {
	return "/" + strings.Trim(app, "/") + "/" + key
}
