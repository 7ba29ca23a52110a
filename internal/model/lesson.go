package model

import (
	"coursegpt_backend/internal/util"
	"strings"

	"gorm.io/datatypes"
)

// SubTopic is the persisted shape of a lesson section. Order is the 1-based
// position inside Lesson.Subtopics and is rewritten on every save.
type SubTopic struct {
	Title    string `json:"title" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Duration int    `json:"duration" validate:"gt=0"`
	Order    int    `json:"order" validate:"gt=0"`
}

// Lesson is stored as one document: the subtopics live in a JSON column of
// the lesson row, so a delete removes them together.
type Lesson struct {
	DocumentBase
	Title       string                        `gorm:"size:255;not null" json:"title" validate:"required"`
	Description string                        `gorm:"type:text;not null" json:"description" validate:"required"`
	Category    string                        `gorm:"size:100;not null" json:"category" validate:"required"`
	Level       string                        `gorm:"size:20;not null;index" json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Duration    int                           `gorm:"not null" json:"duration" validate:"gt=0"`
	Subtopics   datatypes.JSONSlice[SubTopic] `gorm:"not null" json:"subtopics" validate:"min=1,dive"`
}

func (Lesson) TableName() string {
	return "lessons"
}

// SubTopicInput accepts both the draft shape produced by the generator and
// the persisted shape returned by the API. Order is accepted but ignored.
type SubTopicInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Definition  string   `json:"definition,omitempty"`
	Outcome     string   `json:"outcome,omitempty"`
	Activities  []string `json:"activities,omitempty"`
	KeyConcepts []string `json:"keyConcepts,omitempty"`
	Content     string   `json:"content,omitempty"`
	Duration    int      `json:"duration,omitempty"`
	Order       int      `json:"order,omitempty"`
}

// LessonInput is the body of POST /api/lessons.
type LessonInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Level       string          `json:"level,omitempty"`
	Duration    int             `json:"duration,omitempty"`
	Subtopics   []SubTopicInput `json:"subtopics"`
}

// LessonPatch is the body of PUT /api/lessons/:id. Nil fields keep the stored value.
type LessonPatch struct {
	Title       *string          `json:"title,omitempty"`
	Description *string          `json:"description,omitempty"`
	Category    *string          `json:"category,omitempty"`
	Level       *string          `json:"level,omitempty"`
	Duration    *int             `json:"duration,omitempty"`
	Subtopics   *[]SubTopicInput `json:"subtopics,omitempty"`
}

// BuildSubTopics converts client subtopics into their stored form: content
// comes from definition, then description, then an existing content value;
// duration defaults to 30 minutes; order is the 1-based position.
func BuildSubTopics(in []SubTopicInput) []SubTopic {
	out := make([]SubTopic, len(in))
	for i, st := range in {
		content := firstNonBlank(st.Definition, st.Description, st.Content)
		duration := st.Duration
		if duration <= 0 {
			duration = util.DefaultSubtopicDuration
		}
		out[i] = SubTopic{
			Title:    strings.TrimSpace(st.Title),
			Content:  content,
			Duration: duration,
			Order:    i + 1,
		}
	}
	return out
}

// TotalDuration sums the subtopic durations in minutes.
func TotalDuration(subtopics []SubTopic) int {
	total := 0
	for _, st := range subtopics {
		total += st.Duration
	}
	return total
}

// NormalizeLevel lowercases a level so "Beginner" and "beginner" match.
func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
