package course

import (
	"testing"

	"coursegpt_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ref(id, difficulty, duration string) model.CourseLesson {
	return model.CourseLesson{LessonID: id, Title: id, Difficulty: difficulty, Duration: duration}
}

func ids(lessons []model.CourseLesson) []string {
	out := make([]string, len(lessons))
	for i, l := range lessons {
		out[i] = l.LessonID
	}
	return out
}

func TestAddAndRemoveLesson(t *testing.T) {
	d := Draft{Available: []model.CourseLesson{ref("a", "Beginner", "30 min"), ref("b", "Advanced", "45 min")}}

	d = AddLesson(d, d.Available[0])
	assert.Equal(t, []string{"a"}, ids(d.Lessons))
	assert.Equal(t, []string{"b"}, ids(d.Available))

	again := AddLesson(d, ref("a", "Beginner", "30 min"))
	assert.Equal(t, []string{"a"}, ids(again.Lessons))

	d = RemoveLesson(d, "a")
	assert.Empty(t, d.Lessons)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(d.Available))

	same := RemoveLesson(d, "missing")
	assert.Equal(t, d, same)
}

func TestReorder(t *testing.T) {
	d := Draft{Lessons: []model.CourseLesson{ref("a", "", ""), ref("b", "", ""), ref("c", "", ""), ref("d", "", "")}}

	out, err := Reorder(d, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(out.Lessons))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(d.Lessons))

	out, err = Reorder(d, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "a", "b", "c"}, ids(out.Lessons))

	_, err = Reorder(d, 4, 0)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = Reorder(d, 0, -1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestOptimizeSequenceIsStable(t *testing.T) {
	d := Draft{Lessons: []model.CourseLesson{
		ref("A", "Advanced", ""),
		ref("B", "Beginner", ""),
		ref("C", "Beginner", ""),
	}}

	out := OptimizeSequence(d)
	assert.Equal(t, []string{"B", "C", "A"}, ids(out.Lessons))
}

func TestOptimizeSequenceUnknownRanksIntermediate(t *testing.T) {
	d := Draft{Lessons: []model.CourseLesson{
		ref("A", "Advanced", ""),
		ref("X", "General", ""),
		ref("B", "beginner", ""),
	}}

	out := OptimizeSequence(d)
	assert.Equal(t, []string{"B", "X", "A"}, ids(out.Lessons))
	assert.Equal(t, "General", out.Lessons[1].Difficulty)
}

func TestTotalEstimatedHours(t *testing.T) {
	lessons := []model.CourseLesson{
		ref("a", "", "10 hours"),
		ref("b", "", "bad"),
		ref("c", "", "5.5 hours"),
	}
	assert.InDelta(t, 15.5, TotalEstimatedHours(lessons), 1e-9)
	assert.Zero(t, TotalEstimatedHours(nil))
}

func TestValidate(t *testing.T) {
	assert.Equal(t, []string{"title", "lessons"}, Validate(Draft{}))
	assert.Empty(t, Validate(Draft{Title: "Go", Lessons: []model.CourseLesson{ref("a", "", "")}}))
}

func TestLessonRef(t *testing.T) {
	l := model.Lesson{Title: "Intro", Category: "Beginner", Duration: 90}
	l.ID = "id-1"

	r := LessonRef(l)
	assert.Equal(t, "id-1", r.LessonID)
	assert.Equal(t, "Beginner", r.Difficulty)
	assert.Equal(t, "90 min", r.Duration)
}
