package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryHook    Category = "hook"
	CategoryRender  Category = "render"
	CategoryEffect  Category = "effect"
	CategoryState   Category = "state"
	CategoryConfig  Category = "config"
	CategoryLiteral Category = "literal"
	CategoryCLI     Category = "cli"
)

// KiteError is a structured error with a registered code and an optional
// component path.
type KiteError struct {
	// Code is a unique error identifier (e.g., "K011").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Component is the name of the component instance the error belongs to.
	Component string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *KiteError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Component != "" {
		msg += " in <" + e.Component + ">"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *KiteError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a KiteError with the same code.
func (e *KiteError) Is(target error) bool {
	t, ok := target.(*KiteError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithComponent records the component the error belongs to.
func (e *KiteError) WithComponent(name string) *KiteError {
	e.Component = name
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *KiteError) WithSuggestion(s string) *KiteError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *KiteError) WithDetail(d string) *KiteError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *KiteError) Wrap(err error) *KiteError {
	e.Wrapped = err
	return e
}

// New creates a KiteError from a registered error code.
func New(code string) *KiteError {
	template, ok := registry[code]
	if !ok {
		return &KiteError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &KiteError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new KiteError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *KiteError {
	return &KiteError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a KiteError.
// Errors that already are KiteErrors are returned unchanged.
func FromError(err error, code string) *KiteError {
	if err == nil {
		return nil
	}
	var ke *KiteError
	if stderrors.As(err, &ke) {
		return ke
	}
	return New(code).Wrap(err)
}

// FromPanic converts a recovered panic value into a KiteError with the given
// code. Panics carrying an error keep it as the wrapped cause.
func FromPanic(recovered any, code string) *KiteError {
	switch v := recovered.(type) {
	case *KiteError:
		return v
	case error:
		return New(code).Wrap(v)
	default:
		return New(code).Wrap(fmt.Errorf("%v", v))
	}
}

// HasCode reports whether err or any error it wraps is a KiteError with code.
func HasCode(err error, code string) bool {
	return stderrors.Is(err, &KiteError{Code: code})
}
