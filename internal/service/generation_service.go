package service

import (
	"context"
	"coursegpt_backend/internal/config"
	"coursegpt_backend/internal/editor"
	"coursegpt_backend/internal/llm"
	"coursegpt_backend/internal/util"
	"coursegpt_backend/pkg/logger"
	"coursegpt_backend/pkg/monitoring"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	MinSubtopicCount     = 1
	MaxSubtopicCount     = 20
	DefaultSubtopicCount = 5
)

// GenerationSettings are the knobs that can change while the server runs.
type GenerationSettings struct {
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func SettingsFromConfig(cfg config.AIConfig) GenerationSettings {
	return GenerationSettings{
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxOutputTokens,
		Timeout:     cfg.Timeout,
	}
}

// GenerationService drafts lessons with a text-generation provider.
// Provider is nil when the provider could not be configured; every call
// then fails with a configuration error.
type GenerationService struct {
	Provider llm.Provider

	mu       sync.RWMutex
	settings GenerationSettings
}

func NewGenerationService(provider llm.Provider, settings GenerationSettings) *GenerationService {
	return &GenerationService{Provider: provider, settings: settings}
}

func (s *GenerationService) Settings() GenerationSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings swaps the generation settings; in-flight calls keep the old ones.
func (s *GenerationService) UpdateSettings(settings GenerationSettings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
	logger.Log.Info("generation settings updated",
		zap.Float64("temperature", settings.Temperature),
		zap.Int("max_tokens", settings.MaxTokens),
		zap.Duration("timeout", settings.Timeout),
	)
}

// draftPayload is the JSON object the provider is asked to return.
type draftPayload struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Subtopics   []editor.SubTopic `json:"subtopics"`
}

// Generate asks the provider for a lesson on topic and returns it as a draft
// tagged with category. It makes exactly one request.
func (s *GenerationService) Generate(ctx context.Context, topic string, subtopicCount int, category string) (*editor.Draft, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, util.NewValidationError("topic is required", "topic")
	}
	if subtopicCount == 0 {
		subtopicCount = DefaultSubtopicCount
	}
	if subtopicCount < MinSubtopicCount || subtopicCount > MaxSubtopicCount {
		return nil, util.NewValidationError("subtopicCount must be between 1 and 20", "subtopicCount")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		category = util.DefaultLevel
	}

	providerName := "unconfigured"
	if s.Provider != nil {
		providerName = s.Provider.Name()
	}

	ctx, span := otel.Tracer("coursegpt/generation").Start(ctx, "GenerateLesson", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.provider", providerName),
		attribute.Int("lesson.subtopic_count", subtopicCount),
		attribute.String("lesson.category", category),
	)

	start := time.Now()
	draft, strategy, err := s.generate(ctx, topic, subtopicCount, category)
	monitoring.GenerationDuration.WithLabelValues(providerName).Observe(time.Since(start).Seconds())

	if err != nil {
		outcome := generationOutcome(err)
		monitoring.GenerationCounter.WithLabelValues(providerName, outcome).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		logger.Log.Warn("lesson generation failed",
			zap.String("topic", topic),
			zap.String("provider", providerName),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
		return nil, err
	}

	monitoring.GenerationCounter.WithLabelValues(providerName, "ok").Inc()
	span.SetAttributes(attribute.String("llm.extraction", string(strategy)))
	logger.Log.Info("lesson generated",
		zap.String("topic", topic),
		zap.String("provider", providerName),
		zap.String("extraction", string(strategy)),
		zap.Int("subtopics", len(draft.Subtopics)),
	)
	return draft, nil
}

func (s *GenerationService) generate(ctx context.Context, topic string, subtopicCount int, category string) (*editor.Draft, llm.Strategy, error) {
	if s.Provider == nil {
		return nil, "", &util.GenerationError{Kind: util.GenerationConfig}
	}

	settings := s.Settings()
	ctx, cancel := withTimeout(ctx, settings.Timeout)
	defer cancel()

	resp, err := s.Provider.Generate(ctx, llm.Request{
		Prompt:      buildLessonPrompt(topic, subtopicCount, category),
		Temperature: settings.Temperature,
		MaxTokens:   settings.MaxTokens,
	})
	if err != nil {
		return nil, "", classifyGenerationError(err)
	}

	extraction, err := llm.ExtractJSON(resp.Text)
	if err != nil {
		return nil, "", classifyGenerationError(err)
	}
	if missing := llm.RequiredFields(extraction.JSON, "title", "description", "subtopics"); len(missing) > 0 {
		return nil, extraction.Strategy, classifyGenerationError(&llm.ErrMissingFields{Fields: missing})
	}
	if err := llm.ValidateDraftShape(extraction.JSON); err != nil {
		return nil, extraction.Strategy, classifyGenerationError(err)
	}

	var payload draftPayload
	if err := json.Unmarshal(extraction.JSON, &payload); err != nil {
		return nil, extraction.Strategy, classifyGenerationError(&llm.ErrParse{Strategy: extraction.Strategy, Err: err})
	}

	draft := editor.FillEmptyLists(editor.Draft{
		Title:       payload.Title,
		Description: payload.Description,
		Category:    category,
		Subtopics:   payload.Subtopics,
	})
	return &draft, extraction.Strategy, nil
}

// classifyGenerationError turns provider and extraction failures into the
// error kinds the HTTP layer understands.
func classifyGenerationError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &util.TimeoutError{Op: "generate lesson", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &util.GenerationError{Kind: util.GenerationCanceled, Err: err}
	}

	var (
		cfgErr      *llm.ErrConfig
		svcErr      *llm.ErrServiceResponse
		unavailable *llm.ErrProviderUnavailable
		invalid     *llm.ErrInvalidResponse
		parseErr    *llm.ErrParse
		missingErr  *llm.ErrMissingFields
	)
	switch {
	case errors.As(err, &cfgErr):
		return &util.GenerationError{Kind: util.GenerationConfig, Err: err}
	case errors.As(err, &svcErr):
		return &util.GenerationError{Kind: util.GenerationService, Status: svcErr.Status, Message: svcErr.Message, Err: err}
	case errors.As(err, &unavailable):
		return &util.GenerationError{Kind: util.GenerationUnavailable, Err: err}
	case errors.As(err, &invalid):
		return &util.GenerationError{Kind: util.GenerationMalformed, Err: err}
	case errors.Is(err, llm.ErrNoJSON):
		return &util.GenerationError{Kind: util.GenerationNoJSON, Err: err}
	case errors.As(err, &parseErr):
		return &util.GenerationError{Kind: util.GenerationParse, Err: err}
	case errors.As(err, &missingErr):
		return &util.GenerationError{Kind: util.GenerationMissingFields, Missing: missingErr.Fields, Err: err}
	default:
		return &util.GenerationError{Kind: util.GenerationUnavailable, Err: err}
	}
}

func generationOutcome(err error) string {
	var genErr *util.GenerationError
	if errors.As(err, &genErr) {
		return string(genErr.Kind)
	}
	if util.IsTimeout(err) {
		return "timeout"
	}
	return "error"
}
