package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/sakif/exercise-tracker/internal/apperror"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/repository"
)

// logEpochFloor is the lower bound applied when only `to` is supplied —
// far enough in the past to include every real record.
var logEpochFloor = time.Date(1960, time.January, 1, 0, 0, 0, 0, time.UTC)

// LogService builds a user's filtered exercise log: it translates the raw
// from/to/limit query strings plus a user identifier into a response
// envelope, a count, and a bounded list of exercise summaries.
type LogService struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	logger    *slog.Logger
}

// NewLogService creates a new LogService.
func NewLogService(users repository.UserRepository, exercises repository.ExerciseRepository, logger *slog.Logger) *LogService {
	return &LogService{
		users:     users,
		exercises: exercises,
		logger:    logger,
	}
}

// Build resolves the user and assembles their exercise log.
//
// All parameter validation happens up front — an unparseable date or limit
// aborts before any store access. The date window is [from, to): the lower
// bound is inclusive, the upper bound exclusive. When only `from` is given
// the window is capped at the current moment; when only `to` is given it
// reaches back to the 1960 epoch floor; when neither is given no date
// filter is applied at all.
//
// The reported count is the total number of matches capped by limit; the
// log array holds at most limit entries in natural store order. A limit of
// zero means no limit.
func (s *LogService) Build(ctx context.Context, id, fromParam, toParam, limitParam string) (*model.LogResult, error) {
	// === PARAMETER VALIDATION ===
	var fromDate, toDate *time.Time

	if fromParam != "" {
		t, err := parseDate(fromParam)
		if err != nil {
			return nil, apperror.InvalidDate()
		}
		fromDate = &t
	}
	if toParam != "" {
		t, err := parseDate(toParam)
		if err != nil {
			return nil, apperror.InvalidDate()
		}
		toDate = &t
	}

	limit := 0
	if limitParam != "" {
		n, err := strconv.Atoi(strings.TrimSpace(limitParam))
		if err != nil || n < 0 {
			return nil, apperror.InvalidLimit()
		}
		limit = n
	}

	// === USER RESOLUTION ===
	if _, err := xid.FromString(id); err != nil {
		return nil, apperror.InvalidUserID()
	}

	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.UnknownUser("Invalid UserID")
		}
		s.logger.Error("failed to resolve user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreUnavailable(err)
	}

	// === FILTER CONSTRUCTION ===
	// The two blocks below are evaluated in sequence, not as an if/else.
	// When both bounds are present the second block rewrites the upper
	// bound with the same value and leaves the lower bound alone; the
	// epoch floor only applies when `to` arrives without `from`. The
	// `from`/`to` keys are echoed on the envelope whenever the caller
	// supplied them, independent of which bound the filter ends up using.
	result := &model.LogResult{
		ID:       user.ID,
		Username: user.Username,
		Log:      []model.LogEntry{},
	}
	filter := repository.ExerciseFilter{Username: user.Username}

	if fromDate != nil {
		result.From = fromDate.Format(model.DateDisplayLayout)
		filter.From = fromDate
		if toDate != nil {
			result.To = toDate.Format(model.DateDisplayLayout)
			filter.To = toDate
		} else {
			now := time.Now()
			filter.To = &now
		}
	}

	if toDate != nil {
		result.To = toDate.Format(model.DateDisplayLayout)
		filter.To = toDate
		if filter.From == nil {
			floor := logEpochFloor
			filter.From = &floor
		}
	}

	// === COUNT ===
	// The total is computed independently of the limit, then capped.
	total, err := s.exercises.CountExercises(ctx, filter)
	if err != nil {
		s.logger.Error("failed to count exercises",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreUnavailable(err)
	}

	count := total
	if limit > 0 && limit < total {
		count = limit
	}
	result.Count = count

	// === RETRIEVAL & TRUNCATION ===
	// Fetch the full matching set and truncate while projecting, so the
	// entries kept are the first `limit` in natural store order.
	matches, err := s.exercises.QueryExercises(ctx, filter)
	if err != nil {
		s.logger.Error("failed to query exercises",
			slog.String("username", user.Username),
			slog.String("error", err.Error()),
		)
		return nil, apperror.StoreUnavailable(err)
	}

	for i, ex := range matches {
		if limit > 0 && i >= limit {
			break
		}
		result.Log = append(result.Log, model.LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date.Format(model.DateDisplayLayout),
		})
	}

	return result, nil
}

// parseDate parses a calendar date parameter. YYYY-MM-DD is the expected
// form; a full RFC 3339 timestamp is accepted as a fallback. Dates are
// interpreted in UTC, matching how date-only strings have always been
// stored.
func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}
