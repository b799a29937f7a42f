package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products newest first, honouring the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// Create validates and inserts a new product.
func (s *productService) Create(ctx context.Context, input *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &model.Product{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    strings.TrimSpace(input.Category),
		IsAvailable: input.IsAvailable,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		s.logger.Error().Err(err).Str("name", product.Name).Msg("failed to create product")
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().
		Str("product_id", product.ID.String()).
		Str("name", product.Name).
		Msg("product created")

	return product, nil
}

// Update validates and overwrites an existing product.
func (s *productService) Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := &model.Product{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Category:    strings.TrimSpace(input.Category),
		IsAvailable: input.IsAvailable,
		UpdatedAt:   time.Now(),
	}

	found, err := s.productRepo.Update(ctx, product)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update product")
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if !found {
		return nil, model.ErrProductNotFound
	}

	updated, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to reload product")
		return nil, fmt.Errorf("failed to reload product: %w", err)
	}
	if updated == nil {
		return nil, model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product updated")
	return updated, nil
}

// Delete removes a product unless existing order lines reference it.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	refs, err := s.productRepo.CountOrderItemRefs(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to count order references")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if refs > 0 {
		s.logger.Warn().
			Str("product_id", id.String()).
			Int("order_item_refs", refs).
			Msg("product delete blocked by order references")
		return model.ErrProductInUse
	}

	found, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if !found {
		return model.ErrProductNotFound
	}

	s.logger.Info().Str("product_id", id.String()).Msg("product deleted")
	return nil
}

// Stats aggregates catalogue statistics for the admin dashboard.
func (s *productService) Stats(ctx context.Context) (*model.ProductStats, error) {
	stats, err := s.productRepo.Stats(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to aggregate product stats")
		return nil, fmt.Errorf("failed to aggregate product stats: %w", err)
	}
	return stats, nil
}

// validateProductInput checks every field and reports all violations at once.
func validateProductInput(input *model.ProductInput) error {
	if input == nil {
		return model.NewValidationError(model.ErrCodeValidation, "product payload is required")
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(input.Description) == "" {
		fields["description"] = "description is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		fields["category"] = "category is required"
	}
	if input.Price.LessThanOrEqual(decimal.Zero) {
		fields["price"] = "price must be greater than zero"
	}
	if input.ImageURL != "" {
		if _, err := url.ParseRequestURI(input.ImageURL); err != nil {
			fields["image"] = "image must be a valid URL"
		}
	}

	if len(fields) > 0 {
		return model.NewFieldValidationError(fields)
	}
	return nil
}
