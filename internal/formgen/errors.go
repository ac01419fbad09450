package formgen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnusableOutput matches both ParseError and SchemaError
	ErrUnusableOutput = errors.New("unusable model output")
	// ErrEmptyPrompt is returned when there is nothing to generate from
	ErrEmptyPrompt = errors.New("prompt is required")
)

// ParseError means the model output held no parseable JSON object
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrUnusableOutput }

// SchemaError means the JSON parsed but lacks the required top-level shape
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid model output: %s %s", e.Field, e.Reason)
}

func (e *SchemaError) Is(target error) bool { return target == ErrUnusableOutput }
