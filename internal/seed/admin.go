package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"dapur-manis/internal/model"
	"dapur-manis/internal/repository"
)

// EnsureAdmin creates the initial back-office account when no user with the
// given email exists. Safe to run on every startup.
func EnsureAdmin(ctx context.Context, users repository.UserRepository, email, password, name string, logger zerolog.Logger) error {
	log := logger.With().Str("component", "seeder").Logger()

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	log.Info().Str("email", email).Msg("admin account created")
	return nil
}
