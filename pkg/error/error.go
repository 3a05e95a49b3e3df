package error

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by their nature and appropriate handling strategy.
// Malformed SQL-like text is never an ErrorCategory: the lexer reports it as
// ERROR tokens. These categories cover the request and process layers.
type ErrorCategory int

const (
	// ErrCategoryUser represents errors caused by the caller's request.
	// Examples: blank source text, a body that is not a JSON string, an oversized body.
	// These errors are fixable by changing the request.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategorySystem represents errors requiring operator intervention.
	// Examples: unreadable source file, listener that cannot bind, failed response write.
	ErrCategorySystem
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryUser:
		return "user"
	case ErrCategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error codes used across the application.
const (
	CodeEmptyInput     = "EMPTY_INPUT"
	CodeInvalidBody    = "INVALID_BODY"
	CodeBodyTooLarge   = "BODY_TOO_LARGE"
	CodeReadSource     = "READ_SOURCE"
	CodeServerStart    = "SERVER_START"
	CodeEncodeResponse = "ENCODE_RESPONSE"
)

// AppError represents a structured application error with rich context information.
type AppError struct {
	// Code is a unique identifier for this error type (e.g., "EMPTY_INPUT").
	Code string

	// Category classifies the error for appropriate handling strategy.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	Detail string

	// Hint suggests how the user might fix or work around this error.
	Hint string

	// Operation identifies the operation that was being performed when the error occurred.
	// Examples: "Analyze", "ReadSource", "ListenAndServe".
	Operation string

	// Component identifies the part of the application where the error originated.
	// Examples: "Server", "CLI".
	Component string

	// Cause is the underlying error that triggered this error.
	Cause error

	// Stack contains the call stack where this error was created.
	Stack []uintptr
}

// New creates a new AppError with the specified code, category, and message.
func New(category ErrorCategory, code, message string) *AppError {
	return &AppError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// NewUser is shorthand for New(ErrCategoryUser, code, message).
func NewUser(code, message string) *AppError {
	return &AppError{
		Code:     code,
		Category: ErrCategoryUser,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with application-specific context information.
// If the error is already an AppError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Operation == "" {
			appErr.Operation = operation
		}
		if appErr.Component == "" {
			appErr.Component = component
		}
		return appErr
	}

	return &AppError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail sets Detail and returns the receiver for chaining.
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithHint sets Hint and returns the receiver for chaining.
func (e *AppError) WithHint(hint string) *AppError {
	e.Hint = hint
	return e
}

// HTTPStatus maps the error to the status code the server should answer with.
func (e *AppError) HTTPStatus() int {
	switch {
	case e.Code == CodeBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case e.Category == ErrCategoryUser:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// captureStack captures the current call stack for debugging purposes.
// It skips the first 3 frames to exclude captureStack, New/Wrap, and the
// immediate caller, focusing on the actual error origin.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *AppError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *AppError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
