package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dapur-manis/internal/auth"
	"dapur-manis/internal/config"
	"dapur-manis/internal/database"
	"dapur-manis/internal/handler"
	"dapur-manis/internal/ratelimit"
	"dapur-manis/internal/repository"
	"dapur-manis/internal/router"
	"dapur-manis/internal/seed"
	"dapur-manis/internal/service"
	"dapur-manis/internal/whatsapp"

	"github.com/go-redis/redis/v8"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting dapur-manis API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	sessionRepo := repository.NewSessionRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	analyticsRepo := repository.NewAnalyticsRepository(pool, logger)

	// Bootstrap the back-office account before serving traffic
	if cfg.Admin.Email != "" {
		if err := seed.EnsureAdmin(ctx, userRepo, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name, logger); err != nil {
			return fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}

	// Seed the catalogue before serving traffic
	if cfg.Seed.Enabled {
		var loader seed.Loader
		if cfg.Seed.S3Enabled {
			s3Loader, err := seed.NewS3Loader(ctx, cfg.Seed.S3Bucket, cfg.Seed.S3Region, logger)
			if err != nil {
				logger.Warn().
					Err(err).
					Msg("failed to initialise S3 seed loader, falling back to local file system")
				loader = seed.NewFileLoader(logger)
			} else {
				loader = s3Loader
			}
		} else {
			loader = seed.NewFileLoader(logger)
		}

		seeder := seed.NewSeeder(loader, productRepo, logger)
		if err := seeder.Run(ctx, cfg.Seed.Path); err != nil {
			return fmt.Errorf("failed to seed catalogue: %w", err)
		}
	}

	// Tracking rate limiter: in-memory for a single instance, redis when
	// counters must be shared across replicas.
	var limiter ratelimit.Limiter
	if cfg.RateLimit.Store == "redis" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		limiter, err = ratelimit.NewRedisLimiter(ctx, client, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize redis rate limiter: %w", err)
		}
	} else {
		limiter = ratelimit.NewMemoryLimiter(cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)
	}

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	whatsappBuilder := whatsapp.NewBuilder(cfg.WhatsApp.Phone)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	sessionService := service.NewSessionService(sessionRepo, productRepo, userRepo, logger)
	orderService := service.NewOrderService(orderRepo, productRepo, sessionRepo, limiter, whatsappBuilder, cfg.Order.EnforceTransitions, logger)
	analyticsService := service.NewAnalyticsService(analyticsRepo, logger)
	authService := service.NewAuthService(userRepo, tokens, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	sessionHandler := handler.NewSessionHandler(sessionService, logger)
	orderHandler := handler.NewOrderHandler(orderService, logger)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)

	// Initialize router
	mux := router.New(productHandler, sessionHandler, orderHandler, analyticsHandler, authHandler, authService, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
