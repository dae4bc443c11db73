package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind is the stable machine-readable classification of a failure.
type ErrorKind string

const (
	KindInvalidInput       ErrorKind = "invalid_input"
	KindUnauthenticated    ErrorKind = "unauthenticated"
	KindForbidden          ErrorKind = "forbidden"
	KindNotFound           ErrorKind = "not_found"
	KindConflict           ErrorKind = "conflict"
	KindInvalidTransition  ErrorKind = "invalid_transition"
	KindStorageUnavailable ErrorKind = "storage_unavailable"
)

// Error carries a kind alongside a human-readable message. Err, when set,
// preserves the underlying cause for logging and errors.Is checks; only
// Message is ever shown to callers.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError builds a kinded error.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Errorf builds a kinded error with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a kind and user-facing message to an underlying error.
func WrapError(kind ErrorKind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from err, unwrapping as needed.
// Errors without a kind are reported as an empty kind.
func KindOf(err error) ErrorKind {
	var kinded *Error
	if errors.As(err, &kinded) {
		return kinded.Kind
	}
	return ""
}

// httpStatus maps each error kind to its transport status code.
func httpStatus(kind ErrorKind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindInvalidTransition:
		return http.StatusUnprocessableEntity
	case KindStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// JSONError sends a standardized JSON error response for a service error.
// Unkinded errors are logged in full but surface only a generic message.
func JSONError(c *gin.Context, err error) {
	kind := KindOf(err)
	if kind == "" {
		GetLogger().Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error."})
		return
	}
	c.JSON(httpStatus(kind), ErrorResponse{Error: err.Error(), Kind: string(kind)})
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err))
				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Error: "Internal server error.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}
