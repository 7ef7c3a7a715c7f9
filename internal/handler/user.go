package handler

import (
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/service"
)

// UserHandler serves the /api/users collection.
type UserHandler struct {
	service *service.UserService
	logger  *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// HandleList returns all users.
//
// HTTP: GET /api/users
// RESPONSE: [{"_id":"...","username":"alice"}, ...]
func (h *UserHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// HandleCreate stores a new user.
//
// HTTP: POST /api/users with field `username` (form or JSON)
// RESPONSE: {"_id":"...","username":"bob"} on success, or the message
// "Username bob already exists." when the name is taken.
func (h *UserHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	fields := requestFields(r)

	user, err := h.service.Create(r.Context(), fields["username"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
