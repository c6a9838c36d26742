package model

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes failures surfaced to callers.
type ErrorCode string

const (
	// ErrCodeStoreUnavailable indicates the backing store could not be
	// opened, stayed locked, or is corrupt.
	ErrCodeStoreUnavailable ErrorCode = "STORE_UNAVAILABLE"

	// ErrCodeValidation indicates caller input violated a field constraint.
	// No write was attempted.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates an update/delete target does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeMissingRelation indicates a report needs a table that is absent
	// from the current store (reference data not seeded yet).
	ErrCodeMissingRelation ErrorCode = "MISSING_RELATION"

	// ErrCodeEmptyDataset names the empty-denominator condition. It is
	// reserved: reports signal it with report.Table.EmptyDataset and a nil
	// error, so nothing in this module returns an error with this code.
	ErrCodeEmptyDataset ErrorCode = "EMPTY_DATASET"
)

// Error is the error type returned across the module.
//
// Op names the operation ("update listing", "run report claims-per-city")
// and Target the affected identifier ("food_listings#7", "claims") so a
// presentation layer can render a useful message without parsing strings.
type Error struct {
	Code    ErrorCode
	Op      string
	Target  string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if e.Err != nil {
		if msg == "" {
			msg = e.Err.Error()
		} else {
			msg = fmt.Sprintf("%s: %v", msg, e.Err)
		}
	}
	switch {
	case e.Op != "" && e.Target != "":
		return fmt.Sprintf("%s: %s: %s (target=%s)", e.Code, e.Op, msg, e.Target)
	case e.Op != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Op, msg)
	default:
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewValidationError creates a VALIDATION error for a rejected field.
func NewValidationError(op, field, message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Op:      op,
		Target:  field,
		Message: message,
	}
}

// NewNotFoundError creates a NOT_FOUND error for a missing row.
func NewNotFoundError(op, table string, id int64) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Op:      op,
		Target:  fmt.Sprintf("%s#%d", table, id),
		Message: fmt.Sprintf("no row with id %d", id),
	}
}

// NewMissingRelationError creates a MISSING_RELATION error for an absent table.
func NewMissingRelationError(op, table string) *Error {
	return &Error{
		Code:    ErrCodeMissingRelation,
		Op:      op,
		Target:  table,
		Message: fmt.Sprintf("data not available: table %q does not exist", table),
	}
}

// NewStoreUnavailableError wraps a low-level store failure.
func NewStoreUnavailableError(op, target string, err error) *Error {
	return &Error{
		Code:    ErrCodeStoreUnavailable,
		Op:      op,
		Target:  target,
		Message: "store unavailable",
		Err:     err,
	}
}

// CodeOf returns the ErrorCode carried by err, or "" when err is not an *Error.
// Uses errors.As to handle wrapped errors.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsStoreUnavailable reports whether err is a STORE_UNAVAILABLE error.
func IsStoreUnavailable(err error) bool {
	return CodeOf(err) == ErrCodeStoreUnavailable
}

// IsValidation reports whether err is a VALIDATION error.
func IsValidation(err error) bool {
	return CodeOf(err) == ErrCodeValidation
}

// IsNotFound reports whether err is a NOT_FOUND error.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsMissingRelation reports whether err is a MISSING_RELATION error.
func IsMissingRelation(err error) bool {
	return CodeOf(err) == ErrCodeMissingRelation
}

// IsEmptyDataset reports whether err is an EMPTY_DATASET error. Reserved
// like ErrCodeEmptyDataset; report runs never return one.
func IsEmptyDataset(err error) bool {
	return CodeOf(err) == ErrCodeEmptyDataset
}
