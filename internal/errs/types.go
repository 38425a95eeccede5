package errs

import (
	"net/http"
)

// InternalServerErrorMessage is the only text a client sees for unexpected failures.
const InternalServerErrorMessage = "Internal server error"

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
func NewUnauthorizedError(message string) *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusUnauthorized),
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code (defaults to "BAD_REQUEST")
//   - errors: optional field errors produced by validation
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:    formattedCode,
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewConfigError creates a 500 whose message is shown to the client as-is.
// Used when the deployment is missing required settings.
func NewConfigError(message string) *HTTPError {
	return &HTTPError{
		Code:    "CONFIG_ERROR",
		Message: message,
		Status:  http.StatusInternalServerError,
	}
}

// NewInternalServerError creates a generic 500.
//
// The message never carries the underlying cause; log that separately.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    statusCode(http.StatusInternalServerError),
		Message: InternalServerErrorMessage,
		Status:  http.StatusInternalServerError,
	}
}
