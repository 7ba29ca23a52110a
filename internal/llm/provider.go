// Package llm talks to the text-generation services that draft lessons and
// turns their free-text answers into JSON.
package llm

import "context"

// Provider sends one prompt to a text-generation service and returns the
// text it answered with.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name is the provider label used in logs and metrics.
	Name() string

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt with its generation settings.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

type Response struct {
	Text  string
	Model string
}

// resolveModel maps a friendly model name to a provider model ID.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
