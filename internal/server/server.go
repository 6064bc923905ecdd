// Package server wires handlers, middleware, and routes together and owns
// the HTTP server lifecycle.
//
// This is the composition root: every dependency is constructed here and
// injected downward. Each layer only receives what it needs — services get
// repository interfaces, handlers get services, and nothing below this
// package touches more than one layer.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/devhub/internal/auth"
	"github.com/sakif/devhub/internal/config"
	"github.com/sakif/devhub/internal/handler"
	"github.com/sakif/devhub/internal/middleware"
	sqliteRepo "github.com/sakif/devhub/internal/repository/sqlite"
	"github.com/sakif/devhub/internal/service"
)

// Server holds the router and the resources it must release on shutdown.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain: database, token service,
// provider client, services, handlers, routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
// Middleware order matters: RequestID first so everything downstream can
// tag logs with it, Recoverer before our logger so a panicking handler
// still produces a request log line.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	provider := auth.NewProvider(s.config.Provider.BaseURL, s.config.Provider.APIKey)
	if !provider.Configured() {
		s.logger.Warn("identity provider not configured; auth endpoints will fail")
	}
	oauthFlow := auth.NewOAuthFlow(
		s.config.Provider.BaseURL,
		s.config.Provider.OAuthClientID,
		s.config.Provider.OAuthClientSecret,
		s.config.Provider.OAuthRedirectURL,
	)

	authService := service.NewAuthService(s.db, provider, tokens, s.logger)
	ideaService := service.NewIdeaService(s.db, s.logger)
	projectService := service.NewProjectService(s.db, s.logger)
	commentService := service.NewCommentService(s.db, s.db, s.logger)

	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	authHandler := handler.NewAuthHandler(authService, oauthFlow, s.config.FrontendURL, s.logger)
	ideaHandler := handler.NewIdeaHandler(ideaService, s.logger)
	projectHandler := handler.NewProjectHandler(projectService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)
	userHandler := handler.NewUserHandler(authService, projectService, s.logger)

	requireAuth := auth.RequireAuth(tokens)
	optionalAuth := auth.OptionalAuth(tokens)

	s.router.Get("/", healthHandler.HandleRoot)
	s.router.Get("/health", healthHandler.HandleHealth)

	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Post("/signup", authHandler.HandleSignup)
	s.router.Route("/auth", func(r chi.Router) {
		r.With(optionalAuth).Get("/status", authHandler.HandleStatus)
		r.Post("/logout", authHandler.HandleLogout)
		r.Get("/google", authHandler.HandleGoogleLogin)
		r.Get("/callback", authHandler.HandleCallback)
		r.Post("/process-oauth", authHandler.HandleProcessOAuth)
	})

	s.router.Route("/ideas", func(r chi.Router) {
		r.With(optionalAuth).Get("/", ideaHandler.HandleList)
		r.Get("/{id}", ideaHandler.HandleGet)
		r.With(requireAuth).Post("/{id}/like", ideaHandler.HandleLike)
		r.With(requireAuth).Delete("/{id}/like", ideaHandler.HandleUnlike)
		r.Get("/{id}/comments", commentHandler.HandleList)
		r.With(requireAuth).Post("/{id}/comments", commentHandler.HandleCreate)
	})

	s.router.Route("/projects", func(r chi.Router) {
		r.Get("/{id}", projectHandler.HandleGet)
		r.With(requireAuth).Post("/{id}/like", projectHandler.HandleLike)
	})

	s.router.With(requireAuth).Post("/submit", projectHandler.HandleSubmit)
	s.router.Get("/home", projectHandler.HandleHome)
	s.router.With(requireAuth).Get("/user/{id}", userHandler.HandleProfile)

	return nil
}

// Router exposes the configured router, used by tests to drive the full
// stack through httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests (30s),
// close the database so the WAL is flushed and the file lock released.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
