package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/pr-poehali-dev/internal-employee-app/internal/errs"

	"github.com/go-playground/validator/v10"
)

// Validatable is implemented by request payloads that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// QueryBinder is implemented by payloads that read query string parameters.
// BindQuery runs after the body is decoded and before Validate.
type QueryBinder interface {
	BindQuery(params map[string]string) error
}

// BodyIgnorer is implemented by payloads that take no body, such as listings
// served on GET. Their body is never decoded.
type BodyIgnorer interface {
	IgnoresBody() bool
}

// CustomValidationError is a single failure that validator tags cannot express.
// An empty Field means Message stands on its own.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator. Field names in its errors are the
// JSON names, so messages match what the client sent.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its validator tags.
func Struct(v any) error {
	return Validator().Struct(v)
}

// DecodeAndValidate decodes a JSON body into payload, applies query
// parameters when payload is a QueryBinder, then validates it.
//
// An empty body decodes as {}, as does any body sent to a BodyIgnorer.
// Failures come back as a 400 *errs.HTTPError.
func DecodeAndValidate(body []byte, query map[string]string, payload Validatable) error {
	if ignorer, ok := payload.(BodyIgnorer); ok && ignorer.IgnoresBody() {
		body = nil
	}

	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, payload); err != nil {
			return decodeError(err)
		}
	}

	if binder, ok := payload.(QueryBinder); ok {
		if err := binder.BindQuery(query); err != nil {
			msg, fieldErrors := extractValidationError(err)
			return errs.NewBadRequestError(msg, nil, fieldErrors)
		}
	}

	if err := payload.Validate(); err != nil {
		msg, fieldErrors := extractValidationError(err)
		return errs.NewBadRequestError(msg, nil, fieldErrors)
	}

	return nil
}

func decodeError(err error) *errs.HTTPError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field := typeErr.Field
		msg := fmt.Sprintf("must be %s", describeKind(typeErr.Type))
		return errs.NewBadRequestError(field+" "+msg, nil, []errs.FieldError{{Field: field, Error: msg}})
	}
	return errs.NewBadRequestError("Invalid JSON body", nil, nil)
}

func describeKind(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	case reflect.Bool:
		return "a boolean"
	case reflect.String:
		return "a string"
	case reflect.Slice, reflect.Array:
		return "a list"
	default:
		return "an object"
	}
}

// fieldPath drops the root struct name: "CreateOrderRequest.items[0].unit" -> "items[0].unit".
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	var validationErrors validator.ValidationErrors

	switch {
	case errors.As(err, &customErrors):
		for _, err := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: err.Field,
				Error: err.Message,
			})
		}

	case errors.As(err, &validationErrors):
		for _, err := range validationErrors {
			var msg string

			switch err.Tag() {
			case "required":
				msg = "is required"

			case "min":
				switch err.Kind() {
				case reflect.String:
					msg = fmt.Sprintf("must be at least %s characters", err.Param())
				case reflect.Slice, reflect.Array, reflect.Map:
					msg = fmt.Sprintf("must contain at least %s item(s)", err.Param())
				default:
					msg = fmt.Sprintf("must be at least %s", err.Param())
				}

			case "max":
				if err.Kind() == reflect.String {
					msg = fmt.Sprintf("must not exceed %s characters", err.Param())
				} else {
					msg = fmt.Sprintf("must not exceed %s", err.Param())
				}

			case "gt":
				msg = fmt.Sprintf("must be greater than %s", err.Param())

			case "oneof":
				msg = fmt.Sprintf("must be one of: %s", strings.ReplaceAll(err.Param(), " ", ", "))

			default:
				if err.Param() != "" {
					msg = fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
				} else {
					msg = fmt.Sprintf("failed %s", err.Tag())
				}
			}

			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: fieldPath(err.Namespace()),
				Error: msg,
			})
		}

	default:
		return err.Error(), nil
	}

	return joinFieldErrors(fieldErrors), fieldErrors
}

func joinFieldErrors(fieldErrors []errs.FieldError) string {
	if len(fieldErrors) == 0 {
		return "Validation failed"
	}

	parts := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		if fe.Field == "" {
			parts = append(parts, fe.Error)
			continue
		}
		parts = append(parts, fe.Field+" "+fe.Error)
	}
	return strings.Join(parts, "; ")
}
