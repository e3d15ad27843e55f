// Package errors defines the console's error values. Every failure that
// reaches a caller carries an ErrorCode so screens and the CLI can decide
// what to show without matching on text.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an AppError.
type ErrorCode string

const (
	ErrCodeValidation   ErrorCode = "validation"   // bad form or argument input
	ErrCodeUnauthorized ErrorCode = "unauthorized" // no session, or the backend answered 401
	ErrCodeNotFound     ErrorCode = "not_found"    // backend answered 404
	ErrCodeRemote       ErrorCode = "remote"       // backend answered another non-2xx status
	ErrCodeTransport    ErrorCode = "transport"    // no usable response
	ErrCodeTimeout      ErrorCode = "timeout"
	ErrCodeCanceled     ErrorCode = "canceled"
	ErrCodeInternal     ErrorCode = "internal"
)

// AppError is an error with a code, an optional offending form field and an
// optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Field   string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *AppError) Unwrap() error { return e.Cause }

// Validation reports bad input.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message}
}

// Validationf is Validation with a format.
func Validationf(format string, args ...any) *AppError {
	return Validation(fmt.Sprintf(format, args...))
}

// ValidationField reports bad input in one form field.
func ValidationField(field, message string) *AppError {
	return &AppError{Code: ErrCodeValidation, Message: message, Field: field}
}

// Unauthorized reports a missing or rejected session.
func Unauthorized(message string) *AppError {
	return &AppError{Code: ErrCodeUnauthorized, Message: message}
}

// Remote reports a backend answer the console cannot use.
func Remote(message string) *AppError {
	return &AppError{Code: ErrCodeRemote, Message: message}
}

// Internal reports a bug or an environment failure on this side.
func Internal(message string) *AppError {
	return &AppError{Code: ErrCodeInternal, Message: message}
}

// Wrap attaches code and message to err. A nil err stays nil.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, Cause: err}
}

// Wrapf is Wrap with a format.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// GetCode returns the code of the outermost AppError in err's chain, or "".
func GetCode(err error) ErrorCode {
	if e, ok := asApp(err); ok {
		return e.Code
	}
	return ""
}

// GetField returns the form field of the outermost AppError in err's chain, or "".
func GetField(err error) string {
	if e, ok := asApp(err); ok {
		return e.Field
	}
	return ""
}

// HasCode reports whether the outermost AppError in err's chain has code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && GetCode(err) == code
}

func IsValidation(err error) bool   { return HasCode(err, ErrCodeValidation) }
func IsUnauthorized(err error) bool { return HasCode(err, ErrCodeUnauthorized) }
func IsInternal(err error) bool     { return HasCode(err, ErrCodeInternal) }
func IsCanceled(err error) bool     { return HasCode(err, ErrCodeCanceled) }

func asApp(err error) (*AppError, bool) {
	var e *AppError
	ok := errors.As(err, &e)
	return e, ok
}
