package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// compile-time check that *DB implements repository.ExerciseRepository
var _ repository.ExerciseRepository = (*DB)(nil)

// CreateExercise inserts a new exercise. The ID is generated here; the
// caller's struct is modified in place. Dates are normalized to UTC before
// storage so the driver's textual timestamp encoding compares correctly
// in range queries. Defaulting an omitted date is the service layer's
// decision.
func (db *DB) CreateExercise(ctx context.Context, exercise *model.Exercise) error {
	exercise.ID = xid.New().String()
	exercise.Date = exercise.Date.UTC()
	exercise.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO exercises (id, user_id, username, description, duration, date, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		exercise.ID,
		exercise.UserID,
		exercise.Username,
		exercise.Description,
		exercise.Duration,
		exercise.Date,
		exercise.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating exercise: %w", err)
	}

	return nil
}

// filterClause builds the WHERE clause and arguments for an ExerciseFilter.
// From is inclusive, To is exclusive. The clause is assembled from fixed
// fragments — only the arguments are caller-supplied, so the ? placeholders
// keep this injection-safe.
func filterClause(filter repository.ExerciseFilter) (string, []any) {
	clauses := []string{"username = ?"}
	args := []any{filter.Username}

	if filter.From != nil {
		clauses = append(clauses, "date >= ?")
		args = append(args, filter.From.UTC())
	}
	if filter.To != nil {
		clauses = append(clauses, "date < ?")
		args = append(args, filter.To.UTC())
	}

	return strings.Join(clauses, " AND "), args
}

// QueryExercises returns all exercises matching the filter.
//
// No ORDER BY and no LIMIT: the log endpoint reports entries in natural
// store order (rowid order, which is insertion order here) and truncates
// after the fact, so the count can be taken independently of the limit.
func (db *DB) QueryExercises(ctx context.Context, filter repository.ExerciseFilter) ([]model.Exercise, error) {
	where, args := filterClause(filter)

	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, username, description, duration, date, created_at
		 FROM exercises WHERE `+where,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying exercises: %w", err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Username, &e.Description,
			&e.Duration, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}

// CountExercises returns the number of exercises matching the filter,
// independent of any limit.
func (db *DB) CountExercises(ctx context.Context, filter repository.ExerciseFilter) (int, error) {
	where, args := filterClause(filter)

	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercises WHERE `+where,
		args...,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting exercises: %w", err)
	}

	return count, nil
}

// ListExercises returns every exercise record, unscoped, in natural order.
func (db *DB) ListExercises(ctx context.Context) ([]model.Exercise, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, username, description, duration, date, created_at
		 FROM exercises`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing exercises: %w", err)
	}
	defer rows.Close()

	exercises := []model.Exercise{}
	for rows.Next() {
		var e model.Exercise
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Username, &e.Description,
			&e.Duration, &e.Date, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning exercise row: %w", err)
		}
		exercises = append(exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating exercises: %w", err)
	}

	return exercises, nil
}
