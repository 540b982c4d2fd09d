package errs

import (
	"net/http"
)

// MsgUnknownError is the only message a client sees for unclassified failures.
const MsgUnknownError = "unknown error"

func statusCode(status int, code *string) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewForbiddenError creates a 403 Forbidden HTTPError.
func NewForbiddenError(message string, code *string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusForbidden, code),
		Message: message,
		Status:  http.StatusForbidden,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// code is optional (defaults to "BAD_REQUEST") and errors carries
// per-field validation failures.
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusBadRequest, code),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusNotFound, code),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 HTTPError.
// The real cause is logged, never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: MsgUnknownError,
		Status:  http.StatusInternalServerError,
	}
}
