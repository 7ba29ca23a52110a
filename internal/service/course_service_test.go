package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/repository"
	"coursegpt_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type courseFixture struct {
	lessons *LessonService
	courses *CourseService
	ids     map[string]string
}

// newCourseFixture stores three lessons: adv (Advanced, 45 min),
// beg (Beginner, 30 min) and gen (General, 60 min).
func newCourseFixture(t *testing.T) courseFixture {
	t.Helper()
	lessons, db := newTestLessonService(t, nil)
	courses := NewCourseService(repository.NewCourseRepository(db), lessons, 5*time.Second)
	courses.now = stepClock()

	ids := map[string]string{}
	for _, l := range []struct {
		key, category string
		minutes       int
	}{{"adv", "Advanced", 45}, {"beg", "Beginner", 30}, {"gen", "General", 60}} {
		in := lessonInput(l.key, 1)
		in.Category = l.category
		in.Duration = l.minutes
		created, err := lessons.Create(context.Background(), in)
		require.NoError(t, err)
		ids[l.key] = created.ID
	}
	return courseFixture{lessons: lessons, courses: courses, ids: ids}
}

func lessonIDs(c *model.Course) []string {
	out := make([]string, len(c.Lessons))
	for i, l := range c.Lessons {
		out[i] = l.LessonID
	}
	return out
}

func TestCourseService_CreateAndGet(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	created, err := f.courses.Create(ctx, model.CourseInput{
		Title:     "Biology",
		LessonIDs: []string{f.ids["adv"], f.ids["beg"], f.ids["adv"]},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["adv"], f.ids["beg"]}, lessonIDs(created))
	assert.Equal(t, "Advanced", created.Lessons[0].Difficulty)
	assert.Equal(t, "45 min", created.Lessons[0].Duration)
	assert.InDelta(t, 75, created.TotalEstimatedHours, 1e-9)

	got, err := f.courses.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, lessonIDs(created), lessonIDs(got))
}

func TestCourseService_CreateValidation(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()
	var validationErr *util.ValidationError

	_, err := f.courses.Create(ctx, model.CourseInput{Title: "Empty"})
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "lessons")

	_, err = f.courses.Create(ctx, model.CourseInput{LessonIDs: []string{f.ids["beg"]}})
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "title")

	_, err = f.courses.Create(ctx, model.CourseInput{Title: "Ghost", LessonIDs: []string{"nope"}})
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "lessonIds")
}

func TestCourseService_BuilderOperations(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, model.CourseInput{Title: "Mixed", LessonIDs: []string{f.ids["adv"]}})
	require.NoError(t, err)

	c, err = f.courses.AddLesson(ctx, c.ID, f.ids["gen"])
	require.NoError(t, err)
	c, err = f.courses.AddLesson(ctx, c.ID, f.ids["beg"])
	require.NoError(t, err)
	c, err = f.courses.AddLesson(ctx, c.ID, f.ids["beg"])
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["adv"], f.ids["gen"], f.ids["beg"]}, lessonIDs(c))

	c, err = f.courses.Optimize(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["beg"], f.ids["gen"], f.ids["adv"]}, lessonIDs(c))

	c, err = f.courses.Reorder(ctx, c.ID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["adv"], f.ids["beg"], f.ids["gen"]}, lessonIDs(c))

	_, err = f.courses.Reorder(ctx, c.ID, 0, 3)
	var validationErr *util.ValidationError
	assert.True(t, errors.As(err, &validationErr))

	c, err = f.courses.RemoveLesson(ctx, c.ID, f.ids["gen"])
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["adv"], f.ids["beg"]}, lessonIDs(c))

	available, err := f.courses.Available(ctx, c.ID, "")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, f.ids["gen"], available[0].LessonID)

	available, err = f.courses.Available(ctx, c.ID, "advanced")
	require.NoError(t, err)
	assert.Empty(t, available)

	stored, err := f.courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, lessonIDs(c), lessonIDs(stored))
}

func TestCourseService_RemoveLastLesson(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, model.CourseInput{Title: "Solo", LessonIDs: []string{f.ids["beg"]}})
	require.NoError(t, err)

	c, err = f.courses.RemoveLesson(ctx, c.ID, f.ids["beg"])
	require.NoError(t, err)
	assert.Empty(t, c.Lessons)
	assert.NotNil(t, c.Lessons)

	blank := "  "
	_, err = f.courses.Update(ctx, c.ID, model.CoursePatch{Title: &blank})
	var validationErr *util.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, []string{"title"}, validationErr.Fields)

	_, err = f.courses.AddLesson(ctx, c.ID, "missing")
	var notFound *util.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCourseService_UpdateAfterLessonsDeleted(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, model.CourseInput{Title: "Solo", LessonIDs: []string{f.ids["beg"]}})
	require.NoError(t, err)
	require.NoError(t, f.lessons.DeleteByID(ctx, f.ids["beg"]))

	title := "Solo, renamed"
	got, err := f.courses.Update(ctx, c.ID, model.CoursePatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, title, got.Title)
	assert.Empty(t, got.Lessons)
}

func TestCourseService_DeletedLessonDropsFromCourse(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	c, err := f.courses.Create(ctx, model.CourseInput{Title: "Two", LessonIDs: []string{f.ids["beg"], f.ids["adv"]}})
	require.NoError(t, err)
	require.NoError(t, f.lessons.DeleteByID(ctx, f.ids["adv"]))

	got, err := f.courses.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{f.ids["beg"]}, lessonIDs(got))
}

func TestCourseService_UpdateListDelete(t *testing.T) {
	f := newCourseFixture(t)
	ctx := context.Background()

	first, err := f.courses.Create(ctx, model.CourseInput{Title: "First", LessonIDs: []string{f.ids["beg"]}})
	require.NoError(t, err)
	second, err := f.courses.Create(ctx, model.CourseInput{Title: "Second", LessonIDs: []string{f.ids["adv"]}})
	require.NoError(t, err)

	title := "First, revised"
	ids := []string{f.ids["gen"], f.ids["beg"]}
	updated, err := f.courses.Update(ctx, first.ID, model.CoursePatch{Title: &title, LessonIDs: &ids})
	require.NoError(t, err)
	assert.Equal(t, "First, revised", updated.Title)
	assert.Equal(t, ids, lessonIDs(updated))

	courses, err := f.courses.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, second.ID, courses[0].ID)

	require.NoError(t, f.courses.DeleteByID(ctx, second.ID))
	err = f.courses.DeleteByID(ctx, second.ID)
	var notFound *util.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
