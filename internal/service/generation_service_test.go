package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"coursegpt_backend/internal/llm"
	"coursegpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generatedLesson = `{
  "title": "Photosynthesis",
  "description": "How plants make food",
  "subtopics": [
    {"title": "Light", "description": "d1", "definition": "def1", "outcome": "o1", "activities": ["a1"], "keyConcepts": ["k1"]},
    {"title": "Chlorophyll", "description": "d2", "definition": "def2", "outcome": "o2", "activities": ["a2"], "keyConcepts": ["k2"]}
  ]
}`

func testSettings() GenerationSettings {
	return GenerationSettings{Temperature: 0.7, MaxTokens: 4096, Timeout: time.Second}
}

func TestGenerationService_FencedResponse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "Here is the JSON:\n```json\n" + generatedLesson + "\n```"})
	svc := NewGenerationService(mock, testSettings())

	draft, err := svc.Generate(context.Background(), "Photosynthesis", 2, "Intermediate")
	require.NoError(t, err)

	assert.Equal(t, "Photosynthesis", draft.Title)
	assert.Equal(t, "Intermediate", draft.Category)
	assert.Equal(t, 0, draft.ActiveSubtopic)
	require.Len(t, draft.Subtopics, 2)
	assert.Equal(t, []string{"k2"}, draft.Subtopics[1].KeyConcepts)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.InDelta(t, 0.7, call.Temperature, 1e-9)
	assert.Equal(t, 4096, call.MaxTokens)
	assert.True(t, strings.Contains(call.Prompt, `"Photosynthesis"`))
	assert.True(t, strings.Contains(call.Prompt, "2 different subtopics"))
}

func TestGenerationService_MissingSubtopics(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{"title":"t","description":"d"}`})
	svc := NewGenerationService(mock, testSettings())

	_, err := svc.Generate(context.Background(), "Topic", 3, "beginner")
	var genErr *util.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, util.GenerationMissingFields, genErr.Kind)
	assert.Equal(t, []string{"subtopics"}, genErr.Missing)
	assert.Contains(t, genErr.UserMessage(), "subtopics")
}

func TestGenerationService_ErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
		kind util.GenerationKind
	}{
		{"service status", llm.MockResponse{Err: &llm.ErrServiceResponse{Status: 403, Message: "forbidden"}}, util.GenerationService},
		{"unreachable", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp: refused")}}, util.GenerationUnavailable},
		{"malformed", llm.MockResponse{Err: &llm.ErrInvalidResponse{Err: errors.New("no candidates")}}, util.GenerationMalformed},
		{"no json", llm.MockResponse{Text: "Sorry, I can't help."}, util.GenerationNoJSON},
		{"parse", llm.MockResponse{Text: `{"title": "x", "description": }`}, util.GenerationParse},
		{"shape", llm.MockResponse{Text: `{"title":"x","description":"y","subtopics":"none"}`}, util.GenerationParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewGenerationService(llm.NewMockProvider(tt.resp), testSettings())

			_, err := svc.Generate(context.Background(), "Topic", 3, "beginner")
			var genErr *util.GenerationError
			require.True(t, errors.As(err, &genErr), "got %T (%v)", err, err)
			assert.Equal(t, tt.kind, genErr.Kind)
		})
	}
}

func TestGenerationService_ServiceErrorMessage(t *testing.T) {
	svc := NewGenerationService(llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrServiceResponse{Status: 400, Message: "API key not valid"},
	}), testSettings())

	_, err := svc.Generate(context.Background(), "Topic", 3, "beginner")
	var genErr *util.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "API request failed with status 400: API key not valid", genErr.UserMessage())
}

func TestGenerationService_NoProvider(t *testing.T) {
	svc := NewGenerationService(nil, testSettings())

	_, err := svc.Generate(context.Background(), "Topic", 3, "beginner")
	var genErr *util.GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, util.GenerationConfig, genErr.Kind)
	assert.Equal(t, "API key is not configured. Please check your environment variables.", genErr.UserMessage())
}

func TestGenerationService_InputValidation(t *testing.T) {
	svc := NewGenerationService(llm.NewMockProvider(), testSettings())
	var validationErr *util.ValidationError

	_, err := svc.Generate(context.Background(), "  ", 3, "beginner")
	assert.True(t, errors.As(err, &validationErr))

	_, err = svc.Generate(context.Background(), "Topic", 21, "beginner")
	assert.True(t, errors.As(err, &validationErr))
}

// blockingProvider never answers before ctx ends.
type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}
func (blockingProvider) Name() string    { return "blocking" }
func (blockingProvider) ModelID() string { return "blocking" }

func TestGenerationService_Timeout(t *testing.T) {
	settings := testSettings()
	settings.Timeout = 20 * time.Millisecond
	svc := NewGenerationService(blockingProvider{}, settings)

	_, err := svc.Generate(context.Background(), "Topic", 3, "beginner")
	var timeoutErr *util.TimeoutError
	assert.True(t, errors.As(err, &timeoutErr), "got %T (%v)", err, err)
}

func TestGenerationService_ClientCancel(t *testing.T) {
	svc := NewGenerationService(blockingProvider{}, testSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Generate(ctx, "Topic", 3, "beginner")
	var genErr *util.GenerationError
	require.True(t, errors.As(err, &genErr), "got %T (%v)", err, err)
	assert.Equal(t, util.GenerationCanceled, genErr.Kind)
	assert.Equal(t, "canceled", generationOutcome(err))
}

func TestGenerationService_FillsEmptyLists(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: `{
  "title": "Photosynthesis",
  "description": "How plants make food",
  "subtopics": [{"title": "Light", "description": "d1", "definition": "def1", "outcome": "o1"}]
}`})
	svc := NewGenerationService(mock, testSettings())

	draft, err := svc.Generate(context.Background(), "Photosynthesis", 1, "beginner")
	require.NoError(t, err)
	require.Len(t, draft.Subtopics, 1)
	assert.Len(t, draft.Subtopics[0].Activities, 1)
	assert.Len(t, draft.Subtopics[0].KeyConcepts, 1)
}

func TestGenerationService_UpdateSettings(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: generatedLesson})
	svc := NewGenerationService(mock, testSettings())

	svc.UpdateSettings(GenerationSettings{Temperature: 0.2, MaxTokens: 1024, Timeout: time.Second})
	_, err := svc.Generate(context.Background(), "Topic", 2, "beginner")
	require.NoError(t, err)

	assert.InDelta(t, 0.2, mock.Calls[0].Temperature, 1e-9)
	assert.Equal(t, 1024, mock.Calls[0].MaxTokens)
}
