package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"dapur-manis/internal/model"
)

// fileLoader implements Loader for reading seed catalogs from the local filesystem.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based seed loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "seed-loader").Logger(),
	}
}

// Load reads a JSON seed file containing an array of products.
func (l *fileLoader) Load(ctx context.Context, path string) ([]model.ProductInput, error) {
	l.logger.Info().Str("file", path).Msg("loading seed catalog")

	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open seed file")
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer file.Close()

	var products []model.ProductInput
	if err := json.NewDecoder(file).Decode(&products); err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to decode seed file")
		return nil, fmt.Errorf("failed to decode seed file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(products)).
		Msg("seed catalog loaded")

	return products, nil
}
