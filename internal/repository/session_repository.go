package repository

import (
	"context"
	"fmt"
	"time"

	"dapur-manis/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// sessionRepository implements the SessionRepository interface using PostgreSQL.
type sessionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed pre-order session repository.
func NewSessionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

const sessionColumns = `id, name, description, start_date, end_date, status, created_by_id, created_at, updated_at`

func scanSession(row pgx.Row, s *model.POSession) error {
	return row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.StartDate,
		&s.EndDate,
		&s.Status,
		&s.CreatedByID,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
}

// Create inserts a session and its product associations in one transaction.
func (r *sessionRepository) Create(ctx context.Context, s *model.POSession, productIDs []uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO po_sessions (id, name, description, start_date, end_date, status, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = tx.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.StartDate, s.EndDate, s.Status, s.CreatedByID, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID.String()).Msg("failed to create session")
		return fmt.Errorf("failed to create session: %w", err)
	}

	if err := r.insertAssociations(ctx, tx, s.ID, productIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID.String()).Msg("failed to commit transaction")
		return fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug().
		Str("session_id", s.ID.String()).
		Int("product_count", len(productIDs)).
		Msg("session created")

	return nil
}

// Update overwrites a session and replaces its product association set
// wholesale: delete-all then insert-all, not a diff.
func (r *sessionRepository) Update(ctx context.Context, s *model.POSession, productIDs []uuid.UUID) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE po_sessions
		SET name = $2, description = $3, start_date = $4, end_date = $5,
		    status = $6, updated_at = $7
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query,
		s.ID, s.Name, s.Description, s.StartDate, s.EndDate, s.Status, s.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID.String()).Msg("failed to update session")
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	if _, err := tx.Exec(ctx, `DELETE FROM po_session_products WHERE po_session_id = $1`, s.ID); err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID.String()).Msg("failed to clear session products")
		return false, fmt.Errorf("failed to clear session products: %w", err)
	}

	if err := r.insertAssociations(ctx, tx, s.ID, productIDs); err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		r.logger.Error().Err(err).Str("session_id", s.ID.String()).Msg("failed to commit transaction")
		return false, fmt.Errorf("failed to update session: %w", err)
	}

	return true, nil
}

func (r *sessionRepository) insertAssociations(ctx context.Context, tx pgx.Tx, sessionID uuid.UUID, productIDs []uuid.UUID) error {
	if len(productIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, productID := range productIDs {
		batch.Queue(
			`INSERT INTO po_session_products (po_session_id, product_id) VALUES ($1, $2)`,
			sessionID, productID)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range productIDs {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).Str("session_id", sessionID.String()).Msg("failed to insert session product")
			return fmt.Errorf("failed to insert session product: %w", err)
		}
	}

	return nil
}

// Delete removes a session; its association rows cascade.
func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM po_sessions WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to delete session")
		return false, fmt.Errorf("failed to delete session: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetByID retrieves a session by ID.
func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.POSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM po_sessions WHERE id = $1`

	var s model.POSession
	err := scanSession(r.pool.QueryRow(ctx, query, id), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("session_id", id.String()).Msg("session not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("session_id", id.String()).Msg("failed to query session")
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	return &s, nil
}

// List retrieves all sessions, newest first.
func (r *sessionRepository) List(ctx context.Context) ([]model.POSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM po_sessions ORDER BY created_at DESC`

	return r.querySessions(ctx, query)
}

// ListActive retrieves sessions with status ACTIVE whose window contains now.
func (r *sessionRepository) ListActive(ctx context.Context, now time.Time) ([]model.POSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM po_sessions
		WHERE status = 'ACTIVE' AND start_date <= $1 AND end_date >= $1
		ORDER BY start_date DESC
	`

	return r.querySessions(ctx, query, now)
}

func (r *sessionRepository) querySessions(ctx context.Context, query string, args ...any) ([]model.POSession, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query sessions")
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []model.POSession
	for rows.Next() {
		var s model.POSession
		if err := scanSession(rows, &s); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan session row")
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating session rows")
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// ProductsBySession retrieves the associated products for each session ID.
func (r *sessionRepository) ProductsBySession(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID][]model.Product, error) {
	result := make(map[uuid.UUID][]model.Product, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT psp.po_session_id, p.id, p.name, p.description, p.price, p.image_url,
		       p.category, p.is_available, p.created_at, p.updated_at
		FROM po_session_products psp
		JOIN products p ON p.id = psp.product_id
		WHERE psp.po_session_id = ANY($1)
		ORDER BY p.name
	`

	rows, err := r.pool.Query(ctx, query, sessionIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query session products")
		return nil, fmt.Errorf("failed to query session products: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID uuid.UUID
		var p model.Product
		err := rows.Scan(&sessionID, &p.ID, &p.Name, &p.Description, &p.Price,
			&p.ImageURL, &p.Category, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan session product row")
			return nil, fmt.Errorf("failed to scan session product: %w", err)
		}
		result[sessionID] = append(result[sessionID], p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session products: %w", err)
	}

	return result, nil
}

// OrderCounts counts the orders referencing each session ID.
func (r *sessionRepository) OrderCounts(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	result := make(map[uuid.UUID]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT po_session_id, COUNT(*)
		FROM orders
		WHERE po_session_id = ANY($1)
		GROUP BY po_session_id
	`

	rows, err := r.pool.Query(ctx, query, sessionIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count session orders")
		return nil, fmt.Errorf("failed to count session orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sessionID uuid.UUID
		var count int
		if err := rows.Scan(&sessionID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan session order count: %w", err)
		}
		result[sessionID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session order counts: %w", err)
	}

	return result, nil
}
