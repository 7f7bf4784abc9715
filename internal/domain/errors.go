package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for boundary validation
var (
	ErrBlankTitle      = errors.New("title is required")
	ErrBlankTag        = errors.New("tag is blank")
	ErrDuplicateTag    = errors.New("tag already added")
	ErrInvalidEstimate = errors.New("estimate must be a positive number of minutes")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD")
)

// ValidationError reports which form field rejected its input
type ValidationError struct {
	Field string // "title", "tags", "estimate", "due"
	Value string // Optional: offending input
	Err   error  // Underlying sentinel
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s is invalid", e.Field)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
