package server

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/blackat123/prosetup/internal/config"
	"github.com/blackat123/prosetup/internal/gateway"
	custommiddleware "github.com/blackat123/prosetup/internal/middleware"
	"github.com/blackat123/prosetup/internal/repository"
	"github.com/blackat123/prosetup/internal/service"
	"github.com/blackat123/prosetup/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	db     *sql.DB
	redis  *redis.Client
	auth   service.AuthService
}

func NewServer(cfg *config.Config, logger *zap.Logger, db *sql.DB) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins, cfg.Server.Env == "development"))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Initialize repositories
	accountRepo := repository.NewAccountRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	productRepo := repository.NewProductRepository(db)

	// Initialize services
	authService := service.NewAuthService(accountRepo, profileRepo, sessionRepo,
		time.Duration(cfg.Session.ExpiryHours)*time.Hour)
	store := gateway.NewStore(productRepo, authService, logger)

	// Session gate and role gate
	sessionMiddleware := custommiddleware.SessionMiddleware(authService, logger)
	adminMiddleware := custommiddleware.RequireAdmin(authService, logger)

	// Sign-in attempts go through a Redis-backed limiter. Without Redis the
	// endpoint is unprotected but functional.
	var redisClient *redis.Client
	var rateLimiter func(http.Handler) http.Handler
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		rateLimiter = custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.Session.SignInRateLimit,
			Window:            time.Duration(cfg.Session.SignInRateWindowSecs) * time.Second,
			KeyPrefix:         "signin_attempts",
		}, logger)
	}

	// Register routes
	transport.NewAuthHandler(store, logger).RegisterRoutes(router, sessionMiddleware, rateLimiter)
	transport.NewDashboardHandler(store, logger).RegisterRoutes(router, sessionMiddleware)
	transport.NewProductHandler(store, logger).RegisterRoutes(router, sessionMiddleware, adminMiddleware)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		db:     db,
		redis:  redisClient,
		auth:   authService,
	}

	return server
}

// Auth exposes the auth service for startup tasks such as account seeding.
func (s *Server) Auth() service.AuthService {
	return s.auth
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	// Close database connection
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("Failed to close database connection", zap.Error(err))
		}
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
