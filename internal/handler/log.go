package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sakif/exercise-tracker/internal/service"
)

// LogHandler serves a user's filtered exercise log.
type LogHandler struct {
	service *service.LogService
	logger  *slog.Logger
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(service *service.LogService, logger *slog.Logger) *LogHandler {
	return &LogHandler{service: service, logger: logger}
}

// HandleLogs returns the exercise log envelope for one user.
//
// HTTP: GET /api/users/{id}/logs?from=&to=&limit=
// RESPONSE: {"_id","username",["from"],["to"],"count","log":[...]}
// Errors (bad date, bad limit, unknown user) come back as plain-text
// messages, still with status 200.
func (h *LogHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	result, err := h.service.Build(r.Context(),
		chi.URLParam(r, "id"),
		q.Get("from"),
		q.Get("to"),
		q.Get("limit"),
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
