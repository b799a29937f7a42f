package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"
)

// Seeder inserts the seed catalog into the product repository. Products
// already present (matched by name) are left untouched, so seeding is safe
// to run on every startup.
type Seeder struct {
	loader   Loader
	products repository.ProductRepository
	logger   zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(loader Loader, products repository.ProductRepository, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		logger:   logger.With().Str("component", "seeder").Logger(),
	}
}

// Run loads the seed catalog from path and inserts any products that do not
// yet exist.
func (s *Seeder) Run(ctx context.Context, path string) error {
	inputs, err := s.loader.Load(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}

	inserted := 0
	for _, in := range inputs {
		exists, err := s.products.ExistsByName(ctx, in.Name)
		if err != nil {
			return fmt.Errorf("failed to check existing product %q: %w", in.Name, err)
		}
		if exists {
			continue
		}

		now := time.Now()
		p := &model.Product{
			ID:          uuid.New(),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			ImageURL:    in.ImageURL,
			Category:    in.Category,
			IsAvailable: in.IsAvailable,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.products.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", in.Name, err)
		}
		inserted++
	}

	s.logger.Info().
		Int("total", len(inputs)).
		Int("inserted", inserted).
		Msg("seed catalog applied")

	return nil
}
