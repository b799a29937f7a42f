package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// sessionService implements SessionService.
type sessionService struct {
	sessionRepo repository.SessionRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      zerolog.Logger
}

// NewSessionService creates a new pre-order session service.
func NewSessionService(
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	logger zerolog.Logger,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		logger:      logger.With().Str("service", "session").Logger(),
	}
}

// List retrieves all sessions with their products and order counts.
func (s *sessionService) List(ctx context.Context) ([]model.SessionResponse, error) {
	sessions, err := s.sessionRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list sessions")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return s.compose(ctx, sessions)
}

// ListActive retrieves sessions that are currently accepting orders. The
// storefront only shows products that can still be ordered, so unavailable
// ones are dropped here; the admin views keep the full set.
func (s *sessionService) ListActive(ctx context.Context) ([]model.SessionResponse, error) {
	sessions, err := s.sessionRepo.ListActive(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list active sessions")
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	responses, err := s.compose(ctx, sessions)
	if err != nil {
		return nil, err
	}

	for i := range responses {
		available := make([]model.Product, 0, len(responses[i].Products))
		for _, p := range responses[i].Products {
			if p.IsAvailable {
				available = append(available, p)
			}
		}
		responses[i].Products = available
	}
	return responses, nil
}

// GetByID retrieves a single session with its products and order count.
func (s *sessionService) GetByID(ctx context.Context, id uuid.UUID) (*model.SessionResponse, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to get session")
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, model.ErrSessionNotFound
	}

	responses, err := s.compose(ctx, []model.POSession{*session})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// Create validates and inserts a new session with its product set.
func (s *sessionService) Create(ctx context.Context, createdBy uuid.UUID, input *model.SessionInput) (*model.SessionResponse, error) {
	if err := s.validateSessionInput(ctx, input); err != nil {
		return nil, err
	}

	now := time.Now()
	session := &model.POSession{
		ID:          uuid.New(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.sessionRepo.Create(ctx, session, input.ProductIDs); err != nil {
		s.logger.Error().Err(err).Str("name", session.Name).Msg("failed to create session")
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info().
		Str("session_id", session.ID.String()).
		Str("name", session.Name).
		Int("products", len(input.ProductIDs)).
		Msg("session created")

	return s.GetByID(ctx, session.ID)
}

// Update validates and overwrites a session, replacing its product set.
func (s *sessionService) Update(ctx context.Context, id uuid.UUID, input *model.SessionInput) (*model.SessionResponse, error) {
	if err := s.validateSessionInput(ctx, input); err != nil {
		return nil, err
	}

	session := &model.POSession{
		ID:          id,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Status:      input.Status,
		UpdatedAt:   time.Now(),
	}

	found, err := s.sessionRepo.Update(ctx, session, input.ProductIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to update session")
		return nil, fmt.Errorf("failed to update session: %w", err)
	}
	if !found {
		return nil, model.ErrSessionNotFound
	}

	s.logger.Info().Str("session_id", id.String()).Msg("session updated")
	return s.GetByID(ctx, id)
}

// Delete removes a session unless orders reference it.
func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	counts, err := s.sessionRepo.OrderCounts(ctx, []uuid.UUID{id})
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to count session orders")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if counts[id] > 0 {
		s.logger.Warn().
			Str("session_id", id.String()).
			Int("orders", counts[id]).
			Msg("session delete blocked by orders")
		return model.ErrSessionHasOrders
	}

	found, err := s.sessionRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to delete session")
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if !found {
		return model.ErrSessionNotFound
	}

	s.logger.Info().Str("session_id", id.String()).Msg("session deleted")
	return nil
}

// compose joins sessions with their products, order counts and creator blocks.
func (s *sessionService) compose(ctx context.Context, sessions []model.POSession) ([]model.SessionResponse, error) {
	ids := make([]uuid.UUID, len(sessions))
	for i, session := range sessions {
		ids[i] = session.ID
	}

	products, err := s.sessionRepo.ProductsBySession(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load session products")
		return nil, fmt.Errorf("failed to load session products: %w", err)
	}

	counts, err := s.sessionRepo.OrderCounts(ctx, ids)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load session order counts")
		return nil, fmt.Errorf("failed to load session order counts: %w", err)
	}

	// Creator records are shared across sessions, load each once.
	creators := map[uuid.UUID]*model.UserSummary{}
	for _, session := range sessions {
		if _, ok := creators[session.CreatedByID]; ok {
			continue
		}
		user, err := s.userRepo.GetByID(ctx, session.CreatedByID)
		if err != nil {
			s.logger.Error().Err(err).Str("user_id", session.CreatedByID.String()).Msg("failed to load session creator")
			return nil, fmt.Errorf("failed to load session creator: %w", err)
		}
		if user != nil {
			creators[session.CreatedByID] = &model.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}
		} else {
			creators[session.CreatedByID] = nil
		}
	}

	responses := make([]model.SessionResponse, len(sessions))
	for i, session := range sessions {
		sessionProducts := products[session.ID]
		if sessionProducts == nil {
			sessionProducts = []model.Product{}
		}
		responses[i] = model.SessionResponse{
			ID:          session.ID,
			Name:        session.Name,
			Description: session.Description,
			StartDate:   session.StartDate,
			EndDate:     session.EndDate,
			Status:      session.Status,
			CreatedBy:   creators[session.CreatedByID],
			Products:    sessionProducts,
			TotalOrders: counts[session.ID],
			CreatedAt:   session.CreatedAt,
			UpdatedAt:   session.UpdatedAt,
		}
	}
	return responses, nil
}

// validateSessionInput checks the payload and verifies every referenced
// product exists and is available.
func (s *sessionService) validateSessionInput(ctx context.Context, input *model.SessionInput) error {
	if input == nil {
		return model.NewValidationError(model.ErrCodeValidation, "session payload is required")
	}

	fields := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		fields["name"] = "name is required"
	}
	if input.StartDate.IsZero() {
		fields["startDate"] = "start date is required"
	}
	if input.EndDate.IsZero() {
		fields["endDate"] = "end date is required"
	}
	if !input.StartDate.IsZero() && !input.EndDate.IsZero() && !input.EndDate.After(input.StartDate) {
		fields["endDate"] = "end date must be after start date"
	}
	if !input.Status.Valid() {
		fields["status"] = "status must be one of DRAFT, ACTIVE, CLOSED"
	}
	if len(input.ProductIDs) == 0 {
		fields["productIds"] = "at least one product is required"
	}
	if len(fields) > 0 {
		return model.NewFieldValidationError(fields)
	}

	unavailable, err := s.productRepo.FindUnavailable(ctx, input.ProductIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to validate session products")
		return fmt.Errorf("failed to validate session products: %w", err)
	}
	if len(unavailable) > 0 {
		missing := make([]string, len(unavailable))
		for i, id := range unavailable {
			missing[i] = id.String()
		}
		return &model.DomainError{
			Code:    model.ErrCodeProductUnavailable,
			Message: "Some products are missing or unavailable",
			Status:  http.StatusBadRequest,
			Details: map[string][]string{"productIds": missing},
		}
	}
	return nil
}
