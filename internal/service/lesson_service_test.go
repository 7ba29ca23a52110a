package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lessonInput(title string, n int) model.LessonInput {
	in := model.LessonInput{Title: title, Description: "About " + title}
	for i := 0; i < n; i++ {
		in.Subtopics = append(in.Subtopics, model.SubTopicInput{
			Title:       "Part",
			Description: "part description",
			Definition:  "part definition",
		})
	}
	return in
}

func TestLessonService_CreateAppliesDefaults(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)

	in := lessonInput("Fractions", 2)
	in.Subtopics[1].Definition = ""
	in.Subtopics[1].Duration = 45

	lesson, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, lesson.ID)
	assert.Equal(t, "General", lesson.Category)
	assert.Equal(t, "beginner", lesson.Level)
	assert.Equal(t, 75, lesson.Duration)
	require.Len(t, lesson.Subtopics, 2)
	assert.Equal(t, "part definition", lesson.Subtopics[0].Content)
	assert.Equal(t, "part description", lesson.Subtopics[1].Content)
	assert.Equal(t, 30, lesson.Subtopics[0].Duration)
	assert.False(t, lesson.CreatedAt.IsZero())
}

func TestLessonService_CreateRenumbersSubtopics(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)

	in := lessonInput("Order", 3)
	for i := range in.Subtopics {
		in.Subtopics[i].Order = 5
	}

	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	stored, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	for i, st := range stored.Subtopics {
		assert.Equal(t, i+1, st.Order)
	}
}

func TestLessonService_CreateMissingTitlePersistsNothing(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, lessonInput("Existing", 1))
	require.NoError(t, err)
	before, err := svc.List(ctx)
	require.NoError(t, err)

	_, err = svc.Create(ctx, lessonInput("", 2))
	var validationErr *util.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "title")

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(before), len(after))
}

func TestLessonService_CreateRejectsBadLevelAndSubtopics(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	in := lessonInput("Levels", 1)
	in.Level = "expert"
	_, err := svc.Create(ctx, in)
	var validationErr *util.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "level")

	in = lessonInput("Blank subtopic", 1)
	in.Subtopics[0].Title = ""
	_, err = svc.Create(ctx, in)
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "subtopics[0].title")

	in = lessonInput("Mixed case", 1)
	in.Level = "Advanced"
	lesson, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "advanced", lesson.Level)
}

func TestLessonService_ListNewestFirst(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, lessonInput(title, 1))
		require.NoError(t, err)
	}

	lessons, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, lessons, 3)
	assert.Equal(t, "third", lessons[0].Title)
	assert.Equal(t, "first", lessons[2].Title)
}

func TestLessonService_ListByCategory(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	for _, c := range []struct{ title, category string }{
		{"loops", "Programming"},
		{"fractions", "Math"},
		{"pointers", "Programming"},
	} {
		in := lessonInput(c.title, 1)
		in.Category = c.category
		_, err := svc.Create(ctx, in)
		require.NoError(t, err)
	}

	lessons, err := svc.ListByCategory(ctx, "Programming")
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, "pointers", lessons[0].Title)
	assert.Equal(t, "loops", lessons[1].Title)

	lessons, err = svc.ListByCategory(ctx, "programming")
	require.NoError(t, err)
	assert.Empty(t, lessons)

	for _, all := range []string{"", "all"} {
		lessons, err = svc.ListByCategory(ctx, all)
		require.NoError(t, err)
		assert.Len(t, lessons, 3)
	}
}

func TestLessonService_GetByIDNotFound(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)

	lesson, err := svc.GetByID(context.Background(), "does-not-exist")
	assert.Nil(t, lesson)
	var notFound *util.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Lesson not found", notFound.Error())
}

func TestLessonService_UpdateMerges(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, lessonInput("Original", 2))
	require.NoError(t, err)

	title := "Renamed"
	updated, err := svc.Update(ctx, created.ID, model.LessonPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Len(t, updated.Subtopics, 2)

	subtopics := []model.SubTopicInput{{Title: "Only", Content: "kept content", Order: 9}}
	updated, err = svc.Update(ctx, created.ID, model.LessonPatch{Subtopics: &subtopics})
	require.NoError(t, err)
	require.Len(t, updated.Subtopics, 1)
	assert.Equal(t, 1, updated.Subtopics[0].Order)
	assert.Equal(t, "kept content", updated.Subtopics[0].Content)

	empty := []model.SubTopicInput{}
	_, err = svc.Update(ctx, created.ID, model.LessonPatch{Subtopics: &empty})
	var validationErr *util.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	_, err = svc.Update(ctx, "missing", model.LessonPatch{Title: &title})
	var notFound *util.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestLessonService_DeleteTwice(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, lessonInput("Temp", 1))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteByID(ctx, created.ID))

	err = svc.DeleteByID(ctx, created.ID)
	var notFound *util.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestLessonService_DeadlineIsTimeoutError(t *testing.T) {
	svc, _ := newTestLessonService(t, nil)

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := svc.List(ctx)
	var timeoutErr *util.TimeoutError
	assert.True(t, errors.As(err, &timeoutErr), "got %T (%v)", err, err)
}

func TestLessonService_StoreFailureIsPersistenceError(t *testing.T) {
	svc, db := newTestLessonService(t, nil)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Create(context.Background(), lessonInput("Closed", 1))
	var persistenceErr *util.PersistenceError
	assert.True(t, errors.As(err, &persistenceErr), "got %T (%v)", err, err)
}

type memoryLessonCache struct {
	mu      sync.Mutex
	entries map[string]model.Lesson
	hits    int
}

func newMemoryLessonCache() *memoryLessonCache {
	return &memoryLessonCache{entries: map[string]model.Lesson{}}
}

func (c *memoryLessonCache) Get(_ context.Context, id string) (*model.Lesson, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.entries[id]
	if ok {
		c.hits++
	}
	return &l, ok
}

func (c *memoryLessonCache) Set(_ context.Context, lesson *model.Lesson) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[lesson.ID] = *lesson
}

func (c *memoryLessonCache) Invalidate(_ context.Context, id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, id)
}

func TestLessonService_CacheReadThroughAndInvalidate(t *testing.T) {
	cache := newMemoryLessonCache()
	svc, _ := newTestLessonService(t, cache)
	ctx := context.Background()

	created, err := svc.Create(ctx, lessonInput("Cached", 1))
	require.NoError(t, err)

	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	_, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)

	title := "Changed"
	_, err = svc.Update(ctx, created.ID, model.LessonPatch{Title: &title})
	require.NoError(t, err)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Changed", got.Title)

	require.NoError(t, svc.DeleteByID(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	var notFound *util.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
