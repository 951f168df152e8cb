// Package errors provides the structured error types used across the weft
// CLI. Errors carry a category, a stable code, and optional context so the
// command layer can decide exit behavior and verbosity without string
// matching.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	// ErrorTypeConfig covers configuration problems such as a requested
	// extension that is not registered. Reported before rendering begins.
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeSource covers missing or malformed template sources.
	ErrorTypeSource ErrorType = "source"
	// ErrorTypeHook covers failures propagated out of extension hooks.
	ErrorTypeHook ErrorType = "hook"
	// ErrorTypeIO covers output writing and formatter failures.
	ErrorTypeIO ErrorType = "io"
	// ErrorTypeInternal covers bugs and unexpected states.
	ErrorTypeInternal ErrorType = "internal"
)

// WeftError is a structured error with category, code and context.
type WeftError struct {
	Type    ErrorType
	Code    string
	Message string
	Cause   error
	Context map[string]interface{}
	// Path is the source or output file the error relates to, if any.
	Path string
}

// Error implements the error interface.
func (e *WeftError) Error() string {
	var parts []string
	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}
	if e.Path != "" {
		parts = append(parts, e.Path)
	}
	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")
	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}
	return result
}

// Unwrap returns the underlying cause error.
func (e *WeftError) Unwrap() error {
	return e.Cause
}

// Is matches on category and code so callers can compare against sentinel
// constructors without caring about message text.
func (e *WeftError) Is(target error) bool {
	var t *WeftError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}
	return false
}

// WithContext adds context information to the error.
func (e *WeftError) WithContext(key string, value interface{}) *WeftError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithPath attaches the related file path.
func (e *WeftError) WithPath(path string) *WeftError {
	e.Path = path
	return e
}

// Stable error codes used across the CLI.
const (
	CodeUnknownExtension = "WEFT_UNKNOWN_EXTENSION"
	CodeBadStyleFormat   = "WEFT_BAD_STYLE_FORMAT"
	CodeSourceNotFound   = "WEFT_SOURCE_NOT_FOUND"
	CodeSourceInvalid    = "WEFT_SOURCE_INVALID"
	CodeHookFailed       = "WEFT_HOOK_FAILED"
	CodeWriteFailed      = "WEFT_WRITE_FAILED"
	CodeFormatFailed     = "WEFT_FORMAT_FAILED"
)

// NewConfigError creates a configuration error.
func NewConfigError(code, message string, cause error) *WeftError {
	return &WeftError{Type: ErrorTypeConfig, Code: code, Message: message, Cause: cause}
}

// NewSourceError creates a template source error.
func NewSourceError(code, message string, cause error) *WeftError {
	return &WeftError{Type: ErrorTypeSource, Code: code, Message: message, Cause: cause}
}

// NewHookError wraps an error escaping an extension hook, recording the
// extension and hook names in context.
func NewHookError(extension, hook string, cause error) *WeftError {
	e := &WeftError{
		Type:    ErrorTypeHook,
		Code:    CodeHookFailed,
		Message: fmt.Sprintf("extension %q %s hook failed", extension, hook),
		Cause:   cause,
	}
	return e.WithContext("extension", extension).WithContext("hook", hook)
}

// NewIOError creates an output or formatter error.
func NewIOError(code, message string, cause error) *WeftError {
	return &WeftError{Type: ErrorTypeIO, Code: code, Message: message, Cause: cause}
}

// IsType reports whether err (or anything it wraps) is a WeftError of the
// given category.
func IsType(err error, t ErrorType) bool {
	var we *WeftError
	if errors.As(err, &we) {
		return we.Type == t
	}
	return false
}
