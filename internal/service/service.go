package service

import (
	"context"

	"dapur-manis/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products newest first, honouring the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create validates and inserts a new product.
	Create(ctx context.Context, input *model.ProductInput) (*model.Product, error)

	// Update validates and overwrites an existing product.
	Update(ctx context.Context, id uuid.UUID, input *model.ProductInput) (*model.Product, error)

	// Delete removes a product unless existing order lines reference it.
	Delete(ctx context.Context, id uuid.UUID) error

	// Stats aggregates catalogue statistics for the admin dashboard.
	Stats(ctx context.Context) (*model.ProductStats, error)
}

// SessionService defines operations for pre-order session management.
type SessionService interface {
	// List retrieves all sessions with their products and order counts.
	List(ctx context.Context) ([]model.SessionResponse, error)

	// ListActive retrieves sessions that are currently accepting orders.
	ListActive(ctx context.Context) ([]model.SessionResponse, error)

	// GetByID retrieves a single session with its products and order count.
	GetByID(ctx context.Context, id uuid.UUID) (*model.SessionResponse, error)

	// Create validates and inserts a new session with its product set.
	Create(ctx context.Context, createdBy uuid.UUID, input *model.SessionInput) (*model.SessionResponse, error)

	// Update validates and overwrites a session, replacing its product set.
	Update(ctx context.Context, id uuid.UUID, input *model.SessionInput) (*model.SessionResponse, error)

	// Delete removes a session unless orders reference it.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order management and public tracking.
type OrderService interface {
	// Create validates the checkout request, mints an order number and
	// persists the order with its items in one transaction.
	Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its item and session details.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves all orders with their item and session details.
	List(ctx context.Context) ([]model.OrderResponse, error)

	// UpdateStatus moves an order along the status state machine.
	UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateOrderStatusRequest) (*model.OrderResponse, error)

	// Delete removes an order if its status permits deletion.
	Delete(ctx context.Context, id uuid.UUID) error

	// Track retrieves the public view of an order by its order number,
	// rate-limited per caller identity.
	Track(ctx context.Context, orderNumber, clientKey string) (*model.TrackingResponse, error)
}

// AnalyticsService assembles the admin dashboard payload.
type AnalyticsService interface {
	// Dashboard aggregates overview numbers, best sellers, recent orders,
	// status tallies and the daily series.
	Dashboard(ctx context.Context) (*model.AnalyticsResponse, error)
}

// AuthService defines login and token verification for the admin back-office.
type AuthService interface {
	// Login checks credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Authenticate verifies a bearer token and loads the current user record.
	Authenticate(ctx context.Context, token string) (*model.User, error)
}
