package util

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ValidationError reports missing or malformed fields on a write. Its message
// is safe to show to the user as is.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) > 0 {
		return "invalid data: " + strings.Join(e.Fields, ", ")
	}
	return "invalid data"
}

func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// PersistenceError wraps a store failure. Err carries the detail for the
// server log; clients only ever see the generic message.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// TimeoutError reports an external call (store or generation service) that
// did not answer within its deadline.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

type GenerationKind string

const (
	GenerationConfig        GenerationKind = "config"
	GenerationService       GenerationKind = "service"
	GenerationUnavailable   GenerationKind = "unavailable"
	GenerationMalformed     GenerationKind = "malformed"
	GenerationNoJSON        GenerationKind = "no_json"
	GenerationParse         GenerationKind = "parse"
	GenerationMissingFields GenerationKind = "missing_fields"
	// the caller went away before the provider answered
	GenerationCanceled      GenerationKind = "canceled"
)

// GenerationError is any failure of the lesson generation adapter.
type GenerationError struct {
	Kind    GenerationKind
	Status  int
	Message string
	Missing []string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("generation %s: %s: %v", e.Kind, e.UserMessage(), e.Err)
	}
	return fmt.Sprintf("generation %s: %s", e.Kind, e.UserMessage())
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage is the text shown to the caller; each kind reads differently.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case GenerationConfig:
		return "API key is not configured. Please check your environment variables."
	case GenerationService:
		msg := e.Message
		if msg == "" {
			msg = "Unknown error"
		}
		return fmt.Sprintf("API request failed with status %d: %s", e.Status, msg)
	case GenerationUnavailable:
		return "The generation service could not be reached. Please try again later."
	case GenerationMalformed:
		return "Invalid response format from API"
	case GenerationNoJSON:
		return "Could not find valid JSON in the response"
	case GenerationParse:
		return "The generated content could not be parsed as a lesson"
	case GenerationMissingFields:
		return "Response is missing required fields: " + strings.Join(e.Missing, ", ")
	case GenerationCanceled:
		return "The request was cancelled"
	default:
		return "Failed to generate lesson content. Please try again."
	}
}

// IsTimeout reports whether err came from an expired deadline.
func IsTimeout(err error) bool {
	var te *TimeoutError
	return errors.As(err, &te) || errors.Is(err, context.DeadlineExceeded)
}
