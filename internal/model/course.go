package model

import "gorm.io/datatypes"

// CourseLesson references a stored lesson together with the metadata the
// course builder sorts and sums on.
type CourseLesson struct {
	LessonID    string `json:"lessonId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
	Duration    string `json:"duration,omitempty"`
}

type Course struct {
	DocumentBase
	Title         string                            `gorm:"size:255;not null" json:"title"`
	Description   string                            `gorm:"type:text" json:"description"`
	Difficulty    string                            `gorm:"size:50" json:"difficulty"`
	EstimatedTime string                            `gorm:"size:100" json:"estimatedTime"`
	Lessons       datatypes.JSONSlice[CourseLesson] `gorm:"not null" json:"lessons"`

	TotalEstimatedHours float64 `gorm:"-" json:"totalEstimatedHours"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseInput is the body of POST /api/courses.
type CourseInput struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Difficulty    string   `json:"difficulty"`
	EstimatedTime string   `json:"estimatedTime"`
	LessonIDs     []string `json:"lessonIds"`
}

// CoursePatch is the body of PUT /api/courses/:id. LessonIDs, when present,
// replaces the whole sequence.
type CoursePatch struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Difficulty    *string   `json:"difficulty,omitempty"`
	EstimatedTime *string   `json:"estimatedTime,omitempty"`
	LessonIDs     *[]string `json:"lessonIds,omitempty"`
}
