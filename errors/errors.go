// Package errors defines the error kinds shared by the kiosk workflow, its
// validator and the configuration layer.
package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind classifies an error so callers can react without string matching.
type Kind uint8

const (
	Other Kind = iota
	Invalid
	RequiredField
	InvalidFormat
	InvalidAmount
	IllegalTransition
	OperationInProgress
	MissingReference
	SubmissionFailed
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case RequiredField:
		return "required field"
	case InvalidFormat:
		return "invalid format"
	case InvalidAmount:
		return "invalid amount"
	case IllegalTransition:
		return "illegal transition"
	case OperationInProgress:
		return "operation in progress"
	case MissingReference:
		return "missing reference"
	case SubmissionFailed:
		return "submission failed"
	default:
		return "other"
	}
}

// Error is a classified error with an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// E builds a classified error.
func E(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the outermost classified error in the chain.
// A *ValidationErrors reports Invalid.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	var ve *ValidationErrors
	if stderrors.As(err, &ve) {
		return Invalid
	}
	return Other
}

// Is reports whether err carries the given kind.
func Is(kind Kind, err error) bool {
	if err == nil {
		return false
	}
	return KindOf(err) == kind
}

// As is the standard library errors.As, re-exported because this package
// shadows it.
func As(err error, target any) bool {
	return stderrors.As(err, target)
}

// FieldError is a single field-level failure.
type FieldError struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// ValidationErrors collects field errors so that every invalid field is
// reported at once.
type ValidationErrors struct {
	Fields []FieldError
}

// ValidationErrs returns an empty collector.
func ValidationErrs() *ValidationErrors {
	return &ValidationErrors{}
}

// Add records an Invalid error for field.
func (ve *ValidationErrors) Add(field, msg string) {
	ve.AddKind(field, Invalid, msg)
}

// AddKind records an error of the given kind for field.
func (ve *ValidationErrors) AddKind(field string, kind Kind, msg string) {
	ve.Fields = append(ve.Fields, FieldError{Field: field, Kind: kind, Message: msg})
}

// Get returns the first error recorded for field.
func (ve *ValidationErrors) Get(field string) (FieldError, bool) {
	for _, fe := range ve.Fields {
		if fe.Field == field {
			return fe, true
		}
	}
	return FieldError{}, false
}

// Err returns nil when nothing was recorded, the collector otherwise.
func (ve *ValidationErrors) Err() error {
	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationErrors) Error() string {
	parts := make([]string, 0, len(ve.Fields))
	for _, fe := range ve.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(parts, "; ")
}
