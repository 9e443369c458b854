package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Error is the structured error used across all modules. It carries the
// HTTP status it should be rendered with, so handlers never map errors
// by hand.
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"status"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetail attaches a key/value pair for diagnostics. Returns the same
// error so calls can be chained.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error without changing the public message.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

func defaultStatus(t Type) int {
	switch t {
	case TypeValidation:
		return http.StatusBadRequest
	case TypeNotFound:
		return http.StatusNotFound
	case TypeConflict:
		return http.StatusConflict
	case TypeAuthorization:
		return http.StatusForbidden
	case TypeBusiness:
		return http.StatusUnprocessableEntity
	case TypeExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// New creates an ad-hoc error without going through a registry.
func New(message string, t Type) *Error {
	return &Error{
		Code:       string(t),
		Type:       t,
		Message:    message,
		HTTPStatus: defaultStatus(t),
	}
}

// Wrap wraps an underlying error with a public message.
func Wrap(err error, message string, t Type) *Error {
	e := New(message, t)
	e.Err = err
	return e
}

// ============================================================================
// Registry
// ============================================================================

// registration is the immutable template an error code is minted from
type registration struct {
	code       string
	errType    Type
	httpStatus int
	message    string
}

// Registry mints namespaced error codes for one module (e.g. "CHAT").
// Register all codes at package init; New stamps out fresh instances so
// WithDetail never mutates shared state.
type Registry struct {
	prefix string
	codes  map[string]registration
}

// Code is a handle returned by Register and accepted by New.
type Code string

func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]registration),
	}
}

// Register adds an error code to the registry and returns its handle.
func (r *Registry) Register(code string, t Type, httpStatus int, message string) Code {
	full := r.prefix + "_" + code
	r.codes[full] = registration{
		code:       full,
		errType:    t,
		httpStatus: httpStatus,
		message:    message,
	}
	return Code(full)
}

// New creates a fresh error instance for a registered code.
func (r *Registry) New(code Code) *Error {
	reg, ok := r.codes[string(code)]
	if !ok {
		return &Error{
			Code:       string(code),
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Code:       reg.code,
		Type:       reg.errType,
		Message:    reg.message,
		HTTPStatus: reg.httpStatus,
	}
}

// IsType reports whether err is an *Error of the given type.
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}
