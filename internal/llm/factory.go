package llm

import (
	"context"
	"fmt"

	"coursegpt_backend/internal/config"
)

// NewProvider builds the provider selected by ai.provider.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	switch cfg.Provider {
	case "gemini", "":
		return NewGeminiProvider(ctx, GeminiConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "openai":
		return NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "anthropic":
		return NewAnthropicProvider(AnthropicConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: cfg.BaseURL})
	case "mock":
		return NewMockProvider().WithFallback(MockResponse{Text: SampleLessonJSON}), nil
	default:
		return nil, &ErrConfig{Provider: cfg.Provider, Reason: fmt.Sprintf("unknown provider %q", cfg.Provider)}
	}
}

// SampleLessonJSON is what the mock provider answers when it has nothing queued.
const SampleLessonJSON = `{
  "title": "Getting Started with Go",
  "description": "A first look at the Go programming language.",
  "subtopics": [
    {
      "title": "Installing Go",
      "description": "Set up the toolchain.",
      "definition": "The Go toolchain compiles and runs Go programs.",
      "outcome": "Learners can run a hello world program.",
      "activities": ["Install Go", "Run go version"],
      "keyConcepts": ["toolchain", "GOPATH"]
    },
    {
      "title": "Packages",
      "description": "How code is organised.",
      "definition": "A package is a directory of Go files compiled together.",
      "outcome": "Learners can split code into packages.",
      "activities": ["Create a package"],
      "keyConcepts": ["import path"]
    }
  ]
}`
