package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a catalog entity does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUserNotFound is returned when a user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrNotVisitor is returned when a visitor-only operation targets another kind of user.
	ErrNotVisitor = errors.New("user is not a visitor")
	// ErrUsernameTaken is returned when registering a username that is already in use.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidPhone is returned when a telephone number cannot be parsed.
	ErrInvalidPhone = errors.New("invalid telephone number")
	// ErrIDMismatch is returned when the path id and the body id of an update differ.
	ErrIDMismatch = errors.New("id mismatch")
	// ErrEntityDeleted is returned when updating a soft-deleted entity.
	ErrEntityDeleted = errors.New("cannot update a deleted record")
	// ErrConflict is returned when a record changed between read and write.
	ErrConflict = errors.New("record was modified or removed concurrently")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// IsDomain reports whether err is one of the sentinel errors above.
func IsDomain(err error) bool {
	return MapErrorToHTTP(err).StatusCode != http.StatusInternalServerError
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a
// generic 500 so infrastructure detail never reaches the caller.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, ErrNotFound.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrNotVisitor):
		return NewHTTPError(http.StatusNotFound, ErrNotVisitor.Error(), "NOT_A_VISITOR")
	case errors.Is(err, ErrUsernameTaken):
		return NewHTTPError(http.StatusBadRequest, ErrUsernameTaken.Error(), "USERNAME_TAKEN")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, ErrInvalidCredentials.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrInvalidPhone):
		return NewHTTPError(http.StatusBadRequest, ErrInvalidPhone.Error(), "INVALID_TELEPHONE")
	case errors.Is(err, ErrIDMismatch):
		return NewHTTPError(http.StatusBadRequest, ErrIDMismatch.Error(), "ID_MISMATCH")
	case errors.Is(err, ErrEntityDeleted):
		return NewHTTPError(http.StatusBadRequest, ErrEntityDeleted.Error(), "RECORD_DELETED")
	case errors.Is(err, ErrConflict):
		return NewHTTPError(http.StatusConflict, ErrConflict.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
