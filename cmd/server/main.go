package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nicuhealth/central-station/internal/auth"
	"github.com/nicuhealth/central-station/internal/cache"
	"github.com/nicuhealth/central-station/internal/config"
	"github.com/nicuhealth/central-station/internal/database"
	"github.com/nicuhealth/central-station/internal/handlers"
	"github.com/nicuhealth/central-station/internal/middleware"
	"github.com/nicuhealth/central-station/internal/models"
	"github.com/nicuhealth/central-station/internal/repository"
	"github.com/nicuhealth/central-station/internal/services"
	"github.com/nicuhealth/central-station/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting NICU Central Station")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Provision default identities on first start
	if cfg.Auth.SeedPassword != "" {
		if err := database.SeedUsers(context.Background(), cfg.Auth.SeedPassword); err != nil {
			log.Fatal().Err(err).Msg("Failed to seed identities")
		}
	}

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Type == "redis" {
			addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
			cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to Redis")
			}
			log.Info().Msg("Redis cache initialized")
		} else {
			cacheImpl = cache.NewMemoryCache()
			log.Info().Msg("Memory cache initialized")
		}
	} else {
		cacheImpl = cache.NewMemoryCache() // Fallback
		log.Info().Msg("Cache disabled, using memory cache as fallback")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	auditRepo := repository.NewAuditRepository()
	patientRepo := repository.NewPatientRepository()
	orderRepo := repository.NewOrderRepository()

	// Initialize the auth core. The policy is built once and injected
	// into both the edge middleware and the handlers.
	tokens, err := auth.NewTokenService(cfg.Auth.Secret, auth.WithTTL(cfg.Auth.SessionTTL))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token service")
	}
	verifier := auth.NewVerifier(userRepo)
	authService := auth.NewService(verifier, tokens)
	policy := auth.DefaultPolicy()
	cookieOpts := auth.CookieOptions{Secure: cfg.Auth.SecureCookies}

	// Initialize services
	auditService := services.NewAuditService(auditRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cacheImpl)
	authHandler := handlers.NewAuthHandler(authService, auditService, cookieOpts)
	patientHandler := handlers.NewPatientHandler(patientRepo, cacheImpl)
	orderHandler := handlers.NewOrderHandler(orderRepo, patientRepo, auditService, cacheImpl)
	auditHandler := handlers.NewAuditHandler(auditService)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (always public, see policy rule ordering)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Everything else passes through the edge interceptor
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authorize(policy, tokens, auditService))

		r.Route("/api/auth", func(r chi.Router) {
			r.With(middleware.RateLimit(cfg.Auth.LoginRatePerSecond, cfg.Auth.LoginBurst)).
				Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/session", authHandler.Session)
		})

		r.Route("/api/patients", func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Get("/", patientHandler.List)
			r.Get("/{patientID}", patientHandler.Get)
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.Use(middleware.RequireSession)
			r.Get("/", orderHandler.List)
			r.With(middleware.RequireRole(models.ClinicalRoles...)).
				Post("/", orderHandler.Create)
		})

		r.Route("/api/audit", func(r chi.Router) {
			r.Use(middleware.RequireRole(models.RoleAdmin))
			r.Get("/", auditHandler.List)
		})
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
