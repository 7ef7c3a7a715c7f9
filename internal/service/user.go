// Package service contains the business logic layer of the application.
//
// Handlers parse HTTP and write responses; services validate input and
// orchestrate store calls; repositories read and write the database.
// Services accept primitives (not *http.Request) and return domain errors
// from internal/apperror (not status codes), so the same logic would serve
// a CLI or a different transport unchanged.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// UserService handles user creation and listing.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Create stores a new user with the given username.
//
// Uniqueness is checked lookup-then-insert, best effort: if the username is
// already taken the caller gets DuplicateUsername with the canonical
// "Username <name> already exists." message. The store's UNIQUE constraint
// catches the race where two requests pass the lookup simultaneously, and
// surfaces the same error.
func (s *UserService) Create(ctx context.Context, username string) (*model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, apperror.MissingField("username")
	}

	existing, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		s.logger.Error("failed to check username",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreUnavailable(err)
	}
	if existing != nil {
		return nil, apperror.DuplicateUsername(username)
	}

	user := &model.User{Username: username}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrDuplicateUsername) {
			return nil, err
		}
		s.logger.Error("failed to create user",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}
