// Package apperror defines the application's typed errors.
//
// Each failure mode the API can report is a sentinel error. Layers wrap
// errors with fmt.Errorf("...: %w", err), and callers classify them with
// errors.Is / errors.As against these sentinels. The AppError wrapper
// carries the exact human-readable message the client receives — several
// of these strings are long-standing API contract (clients match on them
// literally), so they are built here and nowhere else.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation error")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidLimit      = errors.New("invalid limit")
	ErrInvalidUserID     = errors.New("invalid user id")
	ErrUnknownUser       = errors.New("unknown user")
	ErrDuplicateUsername = errors.New("duplicate username")
	ErrMissingField      = errors.New("missing required field")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// AppError pairs a sentinel error kind with the message shown to the caller.
type AppError struct {
	Err     error  // sentinel kind, for errors.Is checks
	Message string // human-readable, sent verbatim to the client
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// InvalidDate reports an unparseable from/to/date parameter.
func InvalidDate() *AppError {
	return &AppError{
		Err:     ErrInvalidDate,
		Message: "Invalid Date Entered",
	}
}

// InvalidLimit reports a limit parameter that is not a non-negative number.
func InvalidLimit() *AppError {
	return &AppError{
		Err:     ErrInvalidLimit,
		Message: "Invalid Limit Entered",
	}
}

// InvalidUserID reports a user identifier that is not well-formed.
func InvalidUserID() *AppError {
	return &AppError{
		Err:     ErrInvalidUserID,
		Message: "Invalid userID",
	}
}

// UnknownUser reports an identifier that resolves to no user. The message
// differs between endpoints ("Unknown userID" vs "Invalid UserID"), so the
// caller supplies it.
func UnknownUser(message string) *AppError {
	return &AppError{
		Err:     ErrUnknownUser,
		Message: message,
	}
}

// DuplicateUsername reports an attempt to create a user whose username is
// already taken.
func DuplicateUsername(username string) *AppError {
	return &AppError{
		Err:     ErrDuplicateUsername,
		Message: fmt.Sprintf("Username %s already exists.", username),
		Field:   "username",
	}
}

// MissingField reports an absent required form field. The message format
// mirrors a Mongoose "Path `x` is required." validation message.
func MissingField(field string) *AppError {
	return &AppError{
		Err:     ErrMissingField,
		Message: fmt.Sprintf("Path `%s` is required.", field),
		Field:   field,
	}
}

// StoreUnavailable reports an unexpected storage failure. The underlying
// error is wrapped for logs but never shown to the client.
func StoreUnavailable(err error) *AppError {
	return &AppError{
		Err:     fmt.Errorf("%w: %w", ErrStoreUnavailable, err),
		Message: "Unable to complete lookup",
	}
}
