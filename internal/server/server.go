package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/config"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/handler"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/server/middleware"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/store"
)

// Server is the top-level HTTP server. It owns the Chi router, the
// backing store, and the authentication service.
type Server struct {
	cfg        *config.Config
	router     chi.Router
	store      *store.Store
	authSvc    *service.AuthService
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a new Server, wires up all routes and middleware, and returns
// it ready to listen. Call ListenAndServe to start accepting connections.
func New(cfg *config.Config, st *store.Store, authSvc *service.AuthService, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		store:   st,
		authSvc: authSvc,
		logger:  logger,
	}
	s.setupRouter()
	return s
}

func (s *Server) setupRouter() {
	r := chi.NewRouter()

	// --- Global middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(chimw.Compress(5))

	// --- Health checks (no auth required) ---
	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	authHandler := handler.NewAuthHandler(s.authSvc, s.logger)
	contentHandler := handler.NewContentHandler(s.store, s.logger)

	r.Route("/api", func(r chi.Router) {

		// Authentication and account management
		r.Route("/auth", func(r chi.Router) {
			// Credential endpoints are rate limited per client IP.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(s.cfg.Server.LoginRatePerMin))
				r.Post("/login", authHandler.Login)
				r.Post("/register", authHandler.Register)
			})

			// Account administration requires a super admin token.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(s.authSvc))
				r.Use(middleware.RequireRole(model.RoleSuperAdmin))
				r.Post("/users", authHandler.CreateUser)
				r.Get("/users", authHandler.ListUsers)
			})
		})

		// Public reads
		r.Get("/solutions", contentHandler.ListSolutions)
		r.Get("/products", contentHandler.ListProducts)
		r.Get("/news", contentHandler.ListNews)
		r.Get("/partners", contentHandler.ListPartnerBenefits)
		r.Get("/associations", contentHandler.ListAssociations)
		r.Get("/associations/{id}", contentHandler.GetAssociation)
		r.Post("/exhibitions/apply", contentHandler.SubmitApplication)

		// Content mutations require an admin token.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.authSvc))
			r.Use(middleware.RequireRole(model.RoleAdmin))

			r.Post("/solutions", contentHandler.CreateSolution)
			r.Put("/solutions/{id}", contentHandler.UpdateSolution)
			r.Delete("/solutions/{id}", contentHandler.DeleteSolution)

			r.Post("/products", contentHandler.CreateProduct)
			r.Put("/products/{id}", contentHandler.UpdateProduct)
			r.Delete("/products/{id}", contentHandler.DeleteProduct)

			r.Post("/news", contentHandler.CreateNewsItem)
			r.Put("/news/{id}", contentHandler.UpdateNewsItem)
			r.Delete("/news/{id}", contentHandler.DeleteNewsItem)

			r.Post("/partners", contentHandler.CreatePartnerBenefit)
			r.Put("/partners/{id}", contentHandler.UpdatePartnerBenefit)
			r.Delete("/partners/{id}", contentHandler.DeletePartnerBenefit)

			r.Post("/associations", contentHandler.CreateAssociation)
			r.Put("/associations/{id}", contentHandler.UpdateAssociation)
			r.Delete("/associations/{id}", contentHandler.DeleteAssociation)

			r.Get("/exhibitions/applications", contentHandler.ListApplications)
		})
	})

	s.router = r
}

// handleHealthz is a liveness probe. Returns 200 if the process is running.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// handleReadyz is a readiness probe. Returns 200 when the backing store is
// reachable, or 503 when it is not.
func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	httpStatus := http.StatusOK

	if err := s.store.Ping(r.Context()); err != nil {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

// ListenAndServe starts the HTTP server and blocks until a SIGINT or SIGTERM
// is received. It then performs a graceful shutdown, draining in-flight
// requests before closing the store.
func (s *Server) ListenAndServe() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Listen for shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start server in background goroutine
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	select {
	case err := <-errCh:
		return fmt.Errorf("server listen: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutdown signal received, draining connections...")
	}

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if err := s.store.Close(); err != nil {
		s.logger.Warn("store close", "error", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Router returns the underlying Chi router, useful for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

// ServeHTTP implements http.Handler, delegating to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
