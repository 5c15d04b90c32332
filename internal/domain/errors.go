package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidInput indicates the caller must fix an input and re-run.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates a file type no reader understands.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// StructuralInputError reports required columns absent from an input row set.
type StructuralInputError struct {
	Input   Side
	Source  string
	Missing []string
}

// Error implements the error interface
func (e *StructuralInputError) Error() string {
	return fmt.Sprintf("%s input %q is missing required column(s): %s",
		e.Input, e.Source, strings.Join(e.Missing, ", "))
}

// Is implements errors.Is support
func (e *StructuralInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownProfileError reports a category profile name that does not resolve.
type UnknownProfileError struct {
	Name  string
	Known []string
}

// Error implements the error interface
func (e *UnknownProfileError) Error() string {
	return fmt.Sprintf("unknown category profile %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is implements errors.Is support
func (e *UnknownProfileError) Is(target error) bool {
	return target == ErrInvalidInput
}
