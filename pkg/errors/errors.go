// Package errors provides structured error types for flightmesh.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, CLI and HTTP API
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// The point-graph engine reports four recoverable conditions:
//   - OUT_OF_RANGE: a point would sit farther from the base than allowed
//   - NOT_FOUND: an operation referenced an unknown point id or index
//   - INSUFFICIENT_POINTS: a distance matrix needs at least two points
//   - MALFORMED_RECORD: imported text does not follow the CSV layout
//
// The remaining codes cover input validation and internal failures in the
// outer surfaces (CLI, server, renderers).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeOutOfRange, "point is %.2f km from base", d)
//	if errors.Is(err, errors.ErrCodeOutOfRange) {
//	    // snap the marker back
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeMalformedRecord, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Point-graph errors
	ErrCodeOutOfRange         Code = "OUT_OF_RANGE"
	ErrCodeNotFound           Code = "NOT_FOUND"
	ErrCodeInsufficientPoints Code = "INSUFFICIENT_POINTS"
	ErrCodeMalformedRecord    Code = "MALFORMED_RECORD"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// RangeError carries the geometry of a rejected add or move. Stores wrap it
// in an OUT_OF_RANGE *Error so both Is and errors.As work on the result.
type RangeError struct {
	ID         int     // point id, or the id the point would have received
	DistanceKm float64 // distance from base of the rejected position
	MaxRangeKm float64
	LastLat    float64 // last accepted position (the rejected one for adds)
	LastLng    float64
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("point %d is %.3f km from base (max %.3f km)", e.ID, e.DistanceKm, e.MaxRangeKm)
}

// AsRange extracts a *RangeError from the chain.
func AsRange(err error) (*RangeError, bool) {
	var re *RangeError
	ok := errors.As(err, &re)
	return re, ok
}
