// Package course assembles stored lessons into an ordered course.
package course

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"coursegpt_backend/internal/model"

	"github.com/samber/lo"
)

var ErrIndexOutOfRange = errors.New("lesson index out of range")

// Draft is a course being assembled. Available holds the lessons that can
// still be added; a lesson is in at most one of the two lists.
type Draft struct {
	Title         string               `json:"title"`
	Description   string               `json:"description"`
	Difficulty    string               `json:"difficulty"`
	EstimatedTime string               `json:"estimatedTime"`
	Lessons       []model.CourseLesson `json:"lessons"`
	Available     []model.CourseLesson `json:"available"`
}

func (d Draft) clone() Draft {
	out := d
	out.Lessons = slices.Clone(d.Lessons)
	out.Available = slices.Clone(d.Available)
	return out
}

// AddLesson appends lesson to the sequence and takes it out of the pool.
// Adding a lesson that is already in the sequence does nothing.
func AddLesson(d Draft, lesson model.CourseLesson) Draft {
	if Contains(d, lesson.LessonID) {
		return d.clone()
	}
	out := d.clone()
	out.Lessons = append(out.Lessons, lesson)
	out.Available = lo.Reject(out.Available, func(l model.CourseLesson, _ int) bool {
		return l.LessonID == lesson.LessonID
	})
	return out
}

// RemoveLesson takes a lesson out of the sequence and back into the pool.
func RemoveLesson(d Draft, lessonID string) Draft {
	lesson, idx, ok := lo.FindIndexOf(d.Lessons, func(l model.CourseLesson) bool {
		return l.LessonID == lessonID
	})
	if !ok {
		return d.clone()
	}
	out := d.clone()
	out.Lessons = slices.Delete(out.Lessons, idx, idx+1)
	out.Available = append(out.Available, lesson)
	return out
}

// Reorder moves the lesson at from to position to, shifting the ones in between.
func Reorder(d Draft, from, to int) (Draft, error) {
	n := len(d.Lessons)
	if from < 0 || from >= n || to < 0 || to >= n {
		return d, fmt.Errorf("%w: from %d to %d (length %d)", ErrIndexOutOfRange, from, to, n)
	}
	out := d.clone()
	moved := out.Lessons[from]
	out.Lessons = slices.Delete(out.Lessons, from, from+1)
	out.Lessons = slices.Insert(out.Lessons, to, moved)
	return out, nil
}

// OptimizeSequence orders lessons from beginner to advanced. Lessons of equal
// rank keep their relative order.
func OptimizeSequence(d Draft) Draft {
	out := d.clone()
	slices.SortStableFunc(out.Lessons, func(a, b model.CourseLesson) int {
		return DifficultyRank(a.Difficulty) - DifficultyRank(b.Difficulty)
	})
	return out
}

// DifficultyRank maps a difficulty name to its sort rank. Unknown names rank
// with intermediate lessons.
func DifficultyRank(difficulty string) int {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "beginner":
		return 1
	case "intermediate":
		return 2
	case "advanced":
		return 3
	default:
		return 2
	}
}

var leadingNumber = regexp.MustCompile(`^\s*(\d+(?:\.\d+)?)`)

// TotalEstimatedHours sums the leading number of each duration string.
// Durations without one count as zero.
func TotalEstimatedHours(lessons []model.CourseLesson) float64 {
	return lo.SumBy(lessons, func(l model.CourseLesson) float64 {
		m := leadingNumber.FindStringSubmatch(l.Duration)
		if m == nil {
			return 0
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		return v
	})
}

func Contains(d Draft, lessonID string) bool {
	return lo.ContainsBy(d.Lessons, func(l model.CourseLesson) bool {
		return l.LessonID == lessonID
	})
}

// Validate reports the fields a course needs before it can be saved.
func Validate(d Draft) []string {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if len(d.Lessons) == 0 {
		missing = append(missing, "lessons")
	}
	return missing
}

// LessonRef builds the course entry for a stored lesson.
func LessonRef(l model.Lesson) model.CourseLesson {
	return model.CourseLesson{
		LessonID:    l.ID,
		Title:       l.Title,
		Description: l.Description,
		Difficulty:  l.Category,
		Duration:    fmt.Sprintf("%d min", l.Duration),
	}
}
