// Package repository declares the storage interfaces consumed by the
// service layer. Services program against these interfaces; the sqlite
// subpackage provides the concrete implementation, and tests substitute
// in-memory mocks.
package repository

import (
	"context"
	"time"

	"github.com/sakif/exercise-tracker/internal/model"
)

// ExerciseFilter selects exercises by owner and an optional date window.
// From is inclusive, To is exclusive. A nil bound means unbounded on that
// side; both nil means no date filtering at all.
type ExerciseFilter struct {
	Username string
	From     *time.Time
	To       *time.Time
}

type UserRepository interface {
	// CreateUser inserts a new user, generating its ID. Returns
	// apperror.ErrDuplicateUsername if the username is already taken.
	CreateUser(ctx context.Context, user *model.User) error
	// GetUserByID returns apperror.ErrNotFound when no user matches.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	// GetUserByUsername returns apperror.ErrNotFound when no user matches.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type ExerciseRepository interface {
	// CreateExercise inserts a new exercise, generating its ID.
	CreateExercise(ctx context.Context, exercise *model.Exercise) error
	// QueryExercises returns all exercises matching the filter in natural
	// store order. No limit is applied here; truncation is the caller's job.
	QueryExercises(ctx context.Context, filter ExerciseFilter) ([]model.Exercise, error)
	// CountExercises returns the number of exercises matching the filter.
	CountExercises(ctx context.Context, filter ExerciseFilter) (int, error)
	// ListExercises returns every exercise record, unscoped.
	ListExercises(ctx context.Context) ([]model.Exercise, error)
}
