// Package server sets up the HTTP server, router, and route definitions.
//
// This is the composition root: New() assembles the whole dependency chain
// in one place —
//
//	sqlite.DB → services (user, exercise, log) → handlers → routes
//
// — so nothing else in the codebase reaches for ambient globals. The
// services receive repository interfaces, the handlers receive services,
// and the handlers never touch the database directly.
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
	"github.com/rs/cors"

	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/middleware"
	sqliteRepo "github.com/sakif/exercise-tracker/internal/repository/sqlite"
	"github.com/sakif/exercise-tracker/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string
}

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
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

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures middleware and route handlers.
//
// ROUTES:
//
//	GET  /api/users                  → all users
//	POST /api/users                  → create user
//	POST /api/users/{id}/exercises   → log an exercise
//	GET  /api/users/{id}/logs        → filtered exercise log
//	GET  /api/exercises              → all exercises, unscoped
func (s *Server) setupRoutes() {
	// Middleware order matters: RealIP must run before the logger so the
	// logged IP is the client's, and Recoverer wraps everything below it.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The API has always been open to browser clients from any origin.
	s.router.Use(cors.AllowAll().Handler)

	// s.db implements both repository interfaces, so it is passed wherever
	// a user or exercise store is needed.
	userService := service.NewUserService(s.db, s.logger)
	exerciseService := service.NewExerciseService(s.db, s.db, s.logger)
	logService := service.NewLogService(s.db, s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, s.logger)
	logHandler := handler.NewLogHandler(logService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.HandleList)
		r.Post("/users", userHandler.HandleCreate)
		r.Post("/users/{id}/exercises", exerciseHandler.HandleCreate)
		r.Get("/users/{id}/logs", logHandler.HandleLogs)
		r.Get("/exercises", exerciseHandler.HandleListAll)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds to drain, close the database.
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
