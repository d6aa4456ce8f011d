package config

import "context"

// Loader is the interface for a format-specific manifest frontend.
type Loader interface {
	// Load reads every manifest of the loader's format under root (a single
	// file or a directory searched recursively), translates each into the
	// format-agnostic Document model, and returns them as a Store.
	Load(ctx context.Context, root string) (*Store, error)
}
