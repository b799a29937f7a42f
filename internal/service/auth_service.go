package service

import (
	"context"
	"fmt"

	"dapur-manis/internal/auth"
	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Login checks credentials and issues a bearer token. Unknown email and wrong
// password return the same error so the endpoint cannot be used to probe for
// accounts.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if req == nil || req.Email == "" || req.Password == "" {
		return nil, model.NewValidationError(model.ErrCodeValidation, "email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load user")
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("email", req.Email).Msg("login rejected: unknown email")
		return nil, model.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("login rejected: wrong password")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to login: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID.String()).
		Str("email", user.Email).
		Msg("user logged in")

	return &model.LoginResponse{
		Token: token,
		User:  &model.AuthUser{ID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role},
	}, nil
}

// Authenticate verifies a bearer token and loads the current user record. The
// user is re-read on every request so revoked accounts and role changes take
// effect before the token expires.
func (s *authService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("token verification failed")
		return nil, model.ErrUnauthorised
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", claims.UserID.String()).Msg("failed to load token user")
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}
	if user == nil {
		s.logger.Warn().Str("user_id", claims.UserID.String()).Msg("token user no longer exists")
		return nil, model.ErrUnauthorised
	}

	return user, nil
}
