package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// ExerciseService handles logging exercises against a user.
type ExerciseService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	logger    *slog.Logger
}

// NewExerciseService creates a new ExerciseService.
func NewExerciseService(users repository.UserRepository, exercises repository.ExerciseRepository, logger *slog.Logger) *ExerciseService {
	return &ExerciseService{
		users:     users,
		exercises: exercises,
		logger:    logger,
	}
}

// Create validates the raw form inputs and stores a new exercise for the
// user identified by userID.
//
// Validation order is part of the API contract: missing fields are reported
// before the user is resolved, field by field, in userID → description →
// duration order. An omitted date defaults to the creation moment; an
// unparseable one fails with InvalidDate before anything is stored.
func (s *ExerciseService) Create(ctx context.Context, userID, description, duration, date string) (*model.Exercise, error) {
	userID = strings.TrimSpace(userID)
	description = strings.TrimSpace(description)
	duration = strings.TrimSpace(duration)
	date = strings.TrimSpace(date)

	if userID == "" {
		return nil, apperror.MissingField("userID")
	}
	if description == "" {
		return nil, apperror.MissingField("description")
	}
	if duration == "" {
		return nil, apperror.MissingField("duration")
	}

	minutes, err := strconv.Atoi(duration)
	if err != nil {
		return nil, apperror.ValidationFailed("duration", "Invalid Duration Entered")
	}

	when := time.Now()
	if date != "" {
		when, err = parseDate(date)
		if err != nil {
			return nil, apperror.InvalidDate()
		}
	}

	if _, err := xid.FromString(userID); err != nil {
		return nil, apperror.InvalidUserID()
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.UnknownUser("Unknown userID")
		}
		s.logger.Error("failed to resolve user",
			slog.String("id", userID),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreUnavailable(err)
	}

	exercise := &model.Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: description,
		Duration:    minutes,
		Date:        when,
	}

	if err := s.exercises.CreateExercise(ctx, exercise); err != nil {
		s.logger.Error("failed to create exercise",
			slog.String("userId", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating exercise: %w", err)
	}

	s.logger.Info("exercise created",
		slog.String("id", exercise.ID),
		slog.String("username", exercise.Username),
		slog.Int("duration", exercise.Duration),
	)

	return exercise, nil
}

// ListAll returns every stored exercise, unscoped.
func (s *ExerciseService) ListAll(ctx context.Context) ([]model.Exercise, error) {
	exercises, err := s.exercises.ListExercises(ctx)
	if err != nil {
		s.logger.Error("failed to list exercises", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	return exercises, nil
}
