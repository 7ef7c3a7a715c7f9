package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/exercise-tracker/internal/model"
	"github.com/sakif/exercise-tracker/internal/service"
)

// ExerciseHandler serves exercise creation and the unscoped exercise list.
type ExerciseHandler struct {
	service *service.ExerciseService
	logger  *slog.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(service *service.ExerciseService, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{service: service, logger: logger}
}

// exerciseResponse is the creation response shape. Note _id carries the
// OWNING USER's id, not the exercise's — a long-standing quirk of this API
// that clients rely on.
type exerciseResponse struct {
	ID          string `json:"_id"`
	Username    string `json:"username"`
	Date        string `json:"date"`
	Duration    int    `json:"duration"`
	Description string `json:"description"`
}

// HandleCreate logs an exercise against a user.
//
// HTTP: POST /api/users/{id}/exercises with fields `description`,
// `duration`, optional `date` (form or JSON). A `:_id` body field, when
// present, overrides the path id — another legacy quirk kept for
// compatibility.
func (h *ExerciseHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields := requestFields(r)

	userID := fields[":_id"]
	if userID == "" {
		userID = chi.URLParam(r, "id")
	}

	exercise, err := h.service.Create(r.Context(),
		userID,
		fields["description"],
		fields["duration"],
		fields["date"],
	)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, exerciseResponse{
		ID:          exercise.UserID,
		Username:    exercise.Username,
		Date:        exercise.Date.Format(model.DateDisplayLayout),
		Duration:    exercise.Duration,
		Description: exercise.Description,
	})
}

// HandleListAll returns every stored exercise.
//
// HTTP: GET /api/exercises
func (h *ExerciseHandler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	exercises, err := h.service.ListAll(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exercises)
}
