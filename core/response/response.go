package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Error codes shared by all features.
const (
	CodeValidation   = "VALIDATION_FAILED"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeUpstream     = "UPSTREAM_FAILURE"
	CodeInternal     = "INTERNAL_ERROR"
	CodeNotFound     = "NOT_FOUND"
)

// Envelope is the body of every response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    string              `json:"code,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// APIError is an error with its HTTP status and envelope code.
type APIError struct {
	Status  int
	Code    string
	Message string
	Errors  map[string][]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Add records a problem for field.
func (e *APIError) Add(field, problem string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], problem)
}

// New creates an APIError.
func New(status int, code, message string, args ...any) *APIError {
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	return &APIError{Status: status, Code: code, Message: message}
}

var (
	MalformedJSONError  = New(http.StatusBadRequest, CodeValidation, "Malformed JSON body")
	InternalServerError = New(http.StatusInternalServerError, CodeInternal, "Internal server error")
)

// OK writes a 200 success envelope.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusOK).JSON(Envelope{Success: true, Message: message, Data: data})
}

// Fail writes err as a failure envelope.
func Fail(c *fiber.Ctx, err *APIError) error {
	return c.Status(err.Status).JSON(Envelope{
		Success: false,
		Message: err.Message,
		Code:    err.Code,
		Errors:  err.Errors,
	})
}

// ErrorHandler renders errors escaping handlers. Unknown errors are logged and hidden
// behind a generic 500.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return Fail(c, apiErr)
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code := CodeInternal
			switch {
			case fe.Code == fiber.StatusNotFound:
				code = CodeNotFound
			case fe.Code < 500:
				code = CodeValidation
			}
			return Fail(c, New(fe.Code, code, fe.Message))
		}

		if logger != nil {
			logger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return Fail(c, InternalServerError)
	}
}
