package repository

import (
	"context"
	"time"

	"dapur-manis/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products newest first, honouring the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by its ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p *model.Product) error

	// Update overwrites an existing product. Returns false when the ID is absent.
	Update(ctx context.Context, p *model.Product) (bool, error)

	// Delete removes a product. Returns false when the ID is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// FindUnavailable returns the subset of ids that do not reference a
	// currently available product (missing or flagged unavailable).
	FindUnavailable(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// CountOrderItemRefs counts order items referencing the product.
	CountOrderItemRefs(ctx context.Context, id uuid.UUID) (int, error)

	// ExistsByName reports whether a product with the given name exists.
	ExistsByName(ctx context.Context, name string) (bool, error)

	// Stats aggregates catalogue statistics for the admin dashboard.
	Stats(ctx context.Context, now time.Time) (*model.ProductStats, error)
}

// SessionRepository defines the interface for pre-order session data access.
type SessionRepository interface {
	// Create inserts a session together with its product associations in one
	// transaction.
	Create(ctx context.Context, s *model.POSession, productIDs []uuid.UUID) error

	// Update overwrites a session and replaces its entire product association
	// set (delete-all then insert-all) in one transaction. Returns false when
	// the ID is absent.
	Update(ctx context.Context, s *model.POSession, productIDs []uuid.UUID) (bool, error)

	// Delete removes a session; association rows cascade. Returns false when
	// the ID is absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// GetByID retrieves a session by ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.POSession, error)

	// List retrieves all sessions, newest first.
	List(ctx context.Context) ([]model.POSession, error)

	// ListActive retrieves sessions with status ACTIVE whose window contains now.
	ListActive(ctx context.Context, now time.Time) ([]model.POSession, error)

	// ProductsBySession retrieves the associated products for each session ID.
	ProductsBySession(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID][]model.Product, error)

	// OrderCounts counts the orders referencing each session ID.
	OrderCounts(ctx context.Context, sessionIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// NextOrderSequence atomically increments and returns the per-day order
	// counter identified by dayKey, within the provided transaction.
	NextOrderSequence(ctx context.Context, tx pgx.Tx, dayKey string) (int, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateOrderItems inserts multiple order items within the provided transaction.
	CreateOrderItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// GetByID retrieves an order by its ID along with its items, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetByNumber retrieves an order by its order number along with its items.
	GetByNumber(ctx context.Context, orderNumber string) (*model.Order, []model.OrderItem, error)

	// List retrieves all orders, newest first.
	List(ctx context.Context) ([]model.Order, error)

	// ItemsByOrders retrieves the items of each order ID.
	ItemsByOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error)

	// UpdateStatus sets the order status and optional notes. Returns false
	// when the ID is absent.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus, notes *string) (bool, error)

	// Delete removes an order; its items cascade. Returns false when absent.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// UserRepository defines the interface for admin account data access.
type UserRepository interface {
	// GetByEmail retrieves a user by email, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, u *model.User) error
}

// AnalyticsRepository defines read-only rollups over orders and products.
type AnalyticsRepository interface {
	// CountAvailableProducts counts products flagged available.
	CountAvailableProducts(ctx context.Context) (int, error)

	// CountActiveSessions counts sessions with status ACTIVE whose window
	// contains now.
	CountActiveSessions(ctx context.Context, now time.Time) (int, error)

	// CountOrdersSince counts orders created at or after since.
	CountOrdersSince(ctx context.Context, since time.Time) (int, error)

	// RevenueSince sums totalAmount of confirmed-or-further orders created at
	// or after since.
	RevenueSince(ctx context.Context, since time.Time) (decimal.Decimal, error)

	// PeriodStats returns order count and revenue for orders created in
	// [from, to).
	PeriodStats(ctx context.Context, from, to time.Time) (*model.PeriodStats, error)

	// TopProducts returns the n best-selling products by quantity across
	// confirmed-or-further orders.
	TopProducts(ctx context.Context, n int) ([]model.TopProduct, error)

	// RecentOrders returns the n most recent orders.
	RecentOrders(ctx context.Context, n int) ([]model.RecentOrder, error)

	// CountByStatus tallies orders per status.
	CountByStatus(ctx context.Context) (map[model.OrderStatus]int, error)

	// DailyStats returns per-day order count and revenue for the trailing
	// days calendar days.
	DailyStats(ctx context.Context, days int) ([]model.DailyStat, error)
}
