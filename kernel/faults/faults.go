// Package faults holds the error taxonomy shared by every taskhall context.
//
// Contexts declare their own sentinels with New; callers classify them with
// errors.Is against a category and read the stable code with CodeOf.
package faults

import (
	"errors"
	"strings"
)

// Categories.
var (
	ErrNotFound      = errors.New("not found")
	ErrStateConflict = errors.New("state conflict")
	ErrCapacity      = errors.New("capacity exceeded")
	ErrValidation    = errors.New("validation failed")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
)

// Stable codes surfaced to clients.
const (
	CodeAlreadyClaimed   = "ALREADY_CLAIMED"
	CodeCapacityFull     = "CAPACITY_FULL"
	CodeQuotaExceeded    = "QUOTA_EXCEEDED"
	CodeNotFound         = "NOT_FOUND"
	CodeWrongState       = "WRONG_STATE"
	CodeTerminalState    = "TERMINAL_STATE"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeForbidden        = "FORBIDDEN"
)

// Error is a coded sentinel. Two Errors compare equal under errors.Is only
// when they are the same value; Unwrap exposes the category.
type Error struct {
	Code     string
	Category error
	Message  string
}

func New(category error, code string, message string) *Error {
	return &Error{Code: code, Category: category, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Category
}

// ValidationError carries every message produced while validating a payload.
type ValidationError struct {
	Errors []string
}

func NewValidationError(messages []string) *ValidationError {
	return &ValidationError{Errors: append([]string(nil), messages...)}
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// CodeOf returns the client-facing code of err, walking wrapped errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	var validation *ValidationError
	if errors.As(err, &validation) {
		return CodeValidationFailed
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrForbidden):
		return CodeForbidden
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidInput
	case errors.Is(err, ErrValidation):
		return CodeValidationFailed
	}
	return ""
}

// ValidationMessages extracts the aggregated messages from err, if any.
func ValidationMessages(err error) []string {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return append([]string(nil), validation.Errors...)
	}
	return nil
}
