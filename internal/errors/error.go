package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryNavigation Category = "navigation"
	CategoryConfig     Category = "config"
	CategoryCLI        Category = "cli"
)

// ToolboxError is a structured error with a code, category and explanation.
type ToolboxError struct {
	// Code is a unique error identifier (e.g., "N001").
	Code string

	// Category is the error type (navigation, config, cli).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this particular occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *ToolboxError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *ToolboxError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a ToolboxError with the same code.
func (e *ToolboxError) Is(target error) bool {
	t, ok := target.(*ToolboxError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithDetail adds a detailed explanation to the error.
func (e *ToolboxError) WithDetail(format string, args ...any) *ToolboxError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *ToolboxError) WithSuggestion(s string) *ToolboxError {
	e.Suggestion = s
	return e
}

// Wrap wraps another error.
func (e *ToolboxError) Wrap(err error) *ToolboxError {
	e.Wrapped = err
	return e
}

// New creates a ToolboxError from a registered error code.
func New(code string) *ToolboxError {
	template, ok := registry[code]
	if !ok {
		return &ToolboxError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &ToolboxError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new ToolboxError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *ToolboxError {
	return &ToolboxError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a ToolboxError.
// An error that already is (or wraps) a ToolboxError is returned as is.
func FromError(err error, code string) *ToolboxError {
	if err == nil {
		return nil
	}
	var te *ToolboxError
	if stderrors.As(err, &te) {
		return te
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first ToolboxError in err's chain.
func CodeOf(err error) string {
	var te *ToolboxError
	if stderrors.As(err, &te) {
		return te.Code
	}
	return ""
}
