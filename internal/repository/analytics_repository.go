package repository

import (
	"context"
	"fmt"
	"time"

	"dapur-manis/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// analyticsRepository implements read-only dashboard rollups using PostgreSQL.
type analyticsRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAnalyticsRepository creates a new PostgreSQL-backed analytics repository.
func NewAnalyticsRepository(pool *pgxpool.Pool, logger zerolog.Logger) AnalyticsRepository {
	return &analyticsRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "analytics").Logger(),
	}
}

// revenueStatuses matches model.RevenueStatuses as a SQL array literal.
const revenueStatuses = `('CONFIRMED', 'PROCESSING', 'READY', 'COMPLETED')`

// CountAvailableProducts counts products flagged available.
func (r *analyticsRepository) CountAvailableProducts(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE is_available = true`).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count available products")
		return 0, fmt.Errorf("failed to count available products: %w", err)
	}
	return count, nil
}

// CountActiveSessions counts sessions open at the given time.
func (r *analyticsRepository) CountActiveSessions(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM po_sessions
		WHERE status = 'ACTIVE' AND start_date <= $1 AND end_date >= $1
	`, now).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count active sessions")
		return 0, fmt.Errorf("failed to count active sessions: %w", err)
	}
	return count, nil
}

// CountOrdersSince counts orders created at or after since.
func (r *analyticsRepository) CountOrdersSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= $1`, since).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// RevenueSince sums the total amount of confirmed-or-further orders created at
// or after since.
func (r *analyticsRepository) RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND status IN `+revenueStatuses, since).Scan(&revenue)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to sum revenue")
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return revenue, nil
}

// PeriodStats returns order count and revenue for orders created in [from, to).
func (r *analyticsRepository) PeriodStats(ctx context.Context, from, to time.Time) (*model.PeriodStats, error) {
	stats := &model.PeriodStats{}
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= $1 AND created_at < $2
	`, from, to).Scan(&stats.Orders, &stats.Revenue)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to aggregate period stats")
		return nil, fmt.Errorf("failed to aggregate period stats: %w", err)
	}
	return stats, nil
}

// TopProducts returns the n best-selling products by quantity across
// confirmed-or-further orders.
func (r *analyticsRepository) TopProducts(ctx context.Context, n int) ([]model.TopProduct, error) {
	query := `
		SELECT p.id, p.name, p.image_url, p.price,
		       SUM(oi.quantity)::integer, COUNT(DISTINCT oi.order_id)::integer
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status IN ` + revenueStatuses + `
		GROUP BY p.id, p.name, p.image_url, p.price
		ORDER BY SUM(oi.quantity) DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	var top []model.TopProduct
	for rows.Next() {
		var t model.TopProduct
		if err := rows.Scan(&t.ProductID, &t.Name, &t.ImageURL, &t.Price, &t.Quantity, &t.Orders); err != nil {
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		top = append(top, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top products: %w", err)
	}

	return top, nil
}

// RecentOrders returns the n most recent orders.
func (r *analyticsRepository) RecentOrders(ctx context.Context, n int) ([]model.RecentOrder, error) {
	query := `
		SELECT o.id, o.order_number, o.customer_name, o.total_amount, o.status,
		       s.name, o.created_at
		FROM orders o
		LEFT JOIN po_sessions s ON s.id = o.po_session_id
		ORDER BY o.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, n)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query recent orders")
		return nil, fmt.Errorf("failed to query recent orders: %w", err)
	}
	defer rows.Close()

	var recent []model.RecentOrder
	for rows.Next() {
		var ro model.RecentOrder
		err := rows.Scan(&ro.ID, &ro.OrderNumber, &ro.CustomerName, &ro.TotalAmount,
			&ro.Status, &ro.POSessionName, &ro.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent order: %w", err)
		}
		recent = append(recent, ro)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recent orders: %w", err)
	}

	return recent, nil
}

// CountByStatus tallies orders per status.
func (r *analyticsRepository) CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders by status")
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	defer rows.Close()

	result := make(map[model.OrderStatus]int)
	for rows.Next() {
		var status model.OrderStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		result[status] = count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status counts: %w", err)
	}

	return result, nil
}

// DailyStats returns per-day order count and revenue for the trailing days.
func (r *analyticsRepository) DailyStats(ctx context.Context, days int) ([]model.DailyStat, error) {
	query := `
		SELECT to_char(DATE(created_at), 'YYYY-MM-DD'),
		       COUNT(*)::integer,
		       COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE created_at >= CURRENT_DATE - $1 * INTERVAL '1 day'
		GROUP BY DATE(created_at)
		ORDER BY DATE(created_at) ASC
	`

	rows, err := r.pool.Query(ctx, query, days)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query daily stats")
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []model.DailyStat
	for rows.Next() {
		var s model.DailyStat
		if err := rows.Scan(&s.Date, &s.Orders, &s.Revenue); err != nil {
			return nil, fmt.Errorf("failed to scan daily stat: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily stats: %w", err)
	}

	return stats, nil
}
