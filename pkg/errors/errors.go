// Package errors provides structured error types for LogoSlideMaker.
//
// Every error carries a machine-readable [Code], and every code belongs to a
// [Category]. The CLI and the preview server use the category to decide
// whether the author has to fix the document, a referenced file is missing,
// or something went wrong inside the program:
//
//	err := errors.New(errors.ErrCodeInvalidConfig, "box %q: missing y", title)
//	if errors.CategoryOf(err) == errors.CategoryDocument {
//	    // report to the document author
//	}
//
//	// Wrap a lower-level failure, noting the document it came from.
//	err := errors.At(errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "decode TOML"), path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidEntry  Code = "INVALID_ENTRY"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidName   Code = "INVALID_NAME"

	ErrCodeNotFound        Code = "NOT_FOUND"
	ErrCodeImageNotFound   Code = "IMAGE_NOT_FOUND"
	ErrCodeVariantNotFound Code = "VARIANT_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Category groups codes by who has to act on them.
type Category int

const (
	// CategoryInternal is a program failure; the zero value.
	CategoryInternal Category = iota
	// CategoryInput is a bad argument, flag, or request.
	CategoryInput
	// CategoryDocument is a mistake the author must fix in the document or
	// in a file it references.
	CategoryDocument
	// CategoryMissing is a reference to something that does not exist.
	CategoryMissing
	// CategoryUnsupported is a valid request the program cannot serve.
	CategoryUnsupported
)

var categories = map[Code]Category{
	ErrCodeInvalidInput:    CategoryInput,
	ErrCodeInvalidConfig:   CategoryDocument,
	ErrCodeInvalidEntry:    CategoryDocument,
	ErrCodeInvalidFormat:   CategoryDocument,
	ErrCodeInvalidName:     CategoryDocument,
	ErrCodeImageNotFound:   CategoryDocument,
	ErrCodeNotFound:        CategoryMissing,
	ErrCodeVariantNotFound: CategoryMissing,
	ErrCodeUnsupported:     CategoryUnsupported,
}

// Category returns the group c belongs to. Unknown codes are internal.
func (c Code) Category() Category { return categories[c] }

func (c Category) String() string {
	switch c {
	case CategoryInput:
		return "input"
	case CategoryDocument:
		return "document"
	case CategoryMissing:
		return "missing"
	case CategoryUnsupported:
		return "unsupported"
	}
	return "internal"
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code
	Message string
	// Source names where the problem was found, usually a document path.
	Source string
	Cause  error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": "
	if e.Source != "" {
		msg += e.Source + ": "
	}
	msg += e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// At records source on the outermost *Error in err's chain unless one is
// already set. Other errors are wrapped with source as a prefix.
func At(err error, source string) error {
	if err == nil {
		return nil
	}
	if e, ok := outermost(err); ok && e.Source == "" {
		e.Source = source
		return err
	}
	return fmt.Errorf("%s: %w", source, err)
}

// New returns an error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an error with the given code that wraps cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// outermost returns the first *Error in err's chain.
func outermost(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

// Is reports whether the outermost *Error in err's chain has the given code.
func Is(err error, code Code) bool {
	e, ok := outermost(err)
	return ok && e.Code == code
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	if e, ok := outermost(err); ok {
		return e.Code
	}
	return ""
}

// CategoryOf returns the category of err's code. Plain errors are internal.
func CategoryOf(err error) Category {
	return GetCode(err).Category()
}

// UserMessage returns the message of the outermost *Error without its code,
// prefixed by its source when one was recorded. Other errors are returned as is.
func UserMessage(err error) string {
	e, ok := outermost(err)
	if !ok {
		return err.Error()
	}
	if e.Source != "" {
		return e.Source + ": " + e.Message
	}
	return e.Message
}

// IsConfig reports whether err is a problem the author must fix in the
// document, as opposed to a runtime failure.
func IsConfig(err error) bool {
	return CategoryOf(err) == CategoryDocument
}
