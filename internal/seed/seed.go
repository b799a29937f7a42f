package seed

import (
	"context"

	"dapur-manis/internal/model"
)

// Loader defines the interface for loading a seed catalog.
type Loader interface {
	// Load reads a JSON seed file and returns the products it contains.
	Load(ctx context.Context, path string) ([]model.ProductInput, error)
}
