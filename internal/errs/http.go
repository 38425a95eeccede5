package errs

import "strings"

// FieldError represents a field-level validation failure.
//
//	{ "field": "items[0].unit", "error": "is required" }
type FieldError struct {
	// Field is the JSON path of the offending value (e.g. "product_id").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error type every operation failure is reduced to.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "ORDER_ITEM_NOT_FOUND").
//   - Message: the text placed in the response body.
//   - Status: HTTP status code.
//   - Errors: per-field validation errors, logged but not serialized.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Body is the wire shape of every error response.
type Body struct {
	Error string `json:"error"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code or Status, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// ToBody returns the client-facing payload for this error.
func (e *HTTPError) ToBody() Body {
	return Body{Error: e.Message}
}

// WithCode returns a copy of this HTTPError with Code replaced.
func (e *HTTPError) WithCode(code string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: e.Message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
