package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrConfig indicates the provider cannot be built from configuration,
// usually because the API key is missing.
type ErrConfig struct {
	Provider string
	Reason   string
}

func (e *ErrConfig) Error() string {
	return fmt.Sprintf("%s provider: %s", e.Provider, e.Reason)
}

// ErrServiceResponse is a non-success status answered by the service.
type ErrServiceResponse struct {
	Status  int
	Message string
	Err     error
}

func (e *ErrServiceResponse) Error() string {
	return fmt.Sprintf("service responded with status %d: %s", e.Status, e.Message)
}

func (e *ErrServiceResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the service could not be reached at all.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the service answered but the answer does not
// carry text where it should.
type ErrInvalidResponse struct {
	Err error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrNoJSON means none of the extraction strategies found a JSON object.
var ErrNoJSON = errors.New("no JSON object found in response")

// ErrParse means a JSON-looking candidate was found but could not be decoded
// into a lesson draft.
type ErrParse struct {
	Strategy Strategy
	Err      error
}

func (e *ErrParse) Error() string {
	if e.Strategy != "" {
		return fmt.Sprintf("parse %s candidate: %v", e.Strategy, e.Err)
	}
	return fmt.Sprintf("parse response: %v", e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// ErrMissingFields lists required top-level fields absent from the answer.
type ErrMissingFields struct {
	Fields []string
}

func (e *ErrMissingFields) Error() string {
	return "response is missing required fields: " + strings.Join(e.Fields, ", ")
}

// contextError returns ctx's error when the call failed because ctx ended,
// so callers can tell a deadline apart from an unreachable service.
func contextError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%w: %v", ctxErr, err)
	}
	return nil
}
