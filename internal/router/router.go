package router

import (
	"net/http"

	"dapur-manis/internal/handler"
	"dapur-manis/internal/middleware"
	"dapur-manis/internal/service"

	"github.com/rs/zerolog"
)

// New creates a new HTTP router with all routes and middleware configured.
// Storefront routes are open; back-office routes require a bearer token with
// an admin role.
func New(
	productHandler *handler.ProductHandler,
	sessionHandler *handler.SessionHandler,
	orderHandler *handler.OrderHandler,
	analyticsHandler *handler.AnalyticsHandler,
	authHandler *handler.AuthHandler,
	authService service.AuthService,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	authenticated := middleware.Auth(authService, logger)
	adminOnly := middleware.RequireAdmin(logger)
	admin := func(h http.HandlerFunc) http.Handler {
		return authenticated(adminOnly(h))
	}

	// Health check endpoint (no authentication required)
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Public storefront routes
	mux.HandleFunc("GET /api/products", productHandler.List)
	mux.HandleFunc("GET /api/products/{id}", productHandler.GetByID)
	mux.HandleFunc("GET /api/po-sessions/active", sessionHandler.ListActive)
	mux.HandleFunc("POST /api/orders", orderHandler.Create)
	mux.HandleFunc("GET /api/track/{orderNumber}", orderHandler.Track)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)

	// Authenticated routes
	mux.Handle("GET /api/auth/verify", authenticated(http.HandlerFunc(authHandler.Verify)))

	// Admin back-office routes
	mux.Handle("POST /api/products", admin(productHandler.Create))
	mux.Handle("PUT /api/products/{id}", admin(productHandler.Update))
	mux.Handle("DELETE /api/products/{id}", admin(productHandler.Delete))
	mux.Handle("GET /api/products/stats", admin(productHandler.Stats))

	mux.Handle("GET /api/po-sessions", admin(sessionHandler.List))
	mux.Handle("POST /api/po-sessions", admin(sessionHandler.Create))
	mux.Handle("GET /api/po-sessions/{id}", admin(sessionHandler.GetByID))
	mux.Handle("PUT /api/po-sessions/{id}", admin(sessionHandler.Update))
	mux.Handle("DELETE /api/po-sessions/{id}", admin(sessionHandler.Delete))

	mux.Handle("GET /api/orders", admin(orderHandler.List))
	mux.Handle("GET /api/orders/{id}", admin(orderHandler.GetByID))
	mux.Handle("PUT /api/orders/{id}", admin(orderHandler.UpdateStatus))
	mux.Handle("DELETE /api/orders/{id}", admin(orderHandler.Delete))

	mux.Handle("GET /api/analytics", admin(analyticsHandler.Dashboard))

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
