// Package handler contains the HTTP request handlers. Handlers parse the
// request, call the service layer, and write the response — no business
// logic lives here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/exercise-tracker/internal/apperror"
)

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write, so the order here is fixed:
// headers, status, body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent — all we can do is log it.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeMessage sends a plain-text message with HTTP 200.
//
// THE ALWAYS-200 CONTRACT:
// This API reports every error — bad dates, unknown users, duplicate
// usernames, even store failures — as a 200 response whose body is a
// human-readable message. Existing clients match on those bodies, not on
// status codes, so the contract is preserved here. This helper is the one
// place that decision lives; mapping error kinds to real status codes
// later means changing this function and nothing else.
func writeMessage(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(message))
}

// writeError reports a failure to the client. Typed application errors
// carry their client-facing message; anything else gets the generic
// lookup-failure text so internals (SQL, file paths) never leak.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeMessage(w, appErr.Message)
		return
	}
	writeMessage(w, "Unable to complete lookup")
}
