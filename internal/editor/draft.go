// Package editor holds the lesson draft and the pure transitions applied to
// it before it is saved. Every function returns a new Draft and leaves its
// input untouched.
package editor

import (
	"coursegpt_backend/internal/model"
	"coursegpt_backend/internal/util"
)

// SubTopic is the editable form of a lesson section, as produced by the
// generator.
type SubTopic struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Definition  string   `json:"definition"`
	Outcome     string   `json:"outcome"`
	Activities  []string `json:"activities"`
	KeyConcepts []string `json:"keyConcepts"`
	Duration    int      `json:"duration,omitempty"`
}

// Draft is a lesson that has not been saved yet.
type Draft struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	Subtopics      []SubTopic `json:"subtopics"`
	ActiveSubtopic int        `json:"activeSubtopic"`
}

const (
	placeholderTitle       = "New Subtopic"
	placeholderDescription = "Description of the new subtopic"
	placeholderDefinition  = "Definition of the new subtopic"
	placeholderOutcome     = "Learning outcome for this subtopic"
	placeholderActivity    = "Activity 1"
	placeholderKeyConcept  = "Key concept 1"
)

func newPlaceholderSubtopic() SubTopic {
	return SubTopic{
		Title:       placeholderTitle,
		Description: placeholderDescription,
		Definition:  placeholderDefinition,
		Outcome:     placeholderOutcome,
		Activities:  []string{placeholderActivity},
		KeyConcepts: []string{placeholderKeyConcept},
	}
}

// FillEmptyLists seeds empty activities and keyConcepts with a placeholder
// entry, so every subtopic starts with at least one of each.
func FillEmptyLists(d Draft) Draft {
	out := d.Clone()
	for i := range out.Subtopics {
		st := &out.Subtopics[i]
		if len(st.Activities) == 0 {
			st.Activities = []string{placeholderActivity}
		}
		if len(st.KeyConcepts) == 0 {
			st.KeyConcepts = []string{placeholderKeyConcept}
		}
	}
	return out
}

// Clone returns a deep copy of d.
func (d Draft) Clone() Draft {
	out := d
	if d.Subtopics != nil {
		out.Subtopics = make([]SubTopic, len(d.Subtopics))
		for i, st := range d.Subtopics {
			out.Subtopics[i] = st.clone()
		}
	}
	return out
}

func (s SubTopic) clone() SubTopic {
	out := s
	out.Activities = cloneStrings(s.Activities)
	out.KeyConcepts = cloneStrings(s.KeyConcepts)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// ToLessonInput converts a draft into the payload accepted by the lesson
// store. Level is derived from the category when it names a known level.
func ToLessonInput(d Draft) model.LessonInput {
	subtopics := make([]model.SubTopicInput, len(d.Subtopics))
	for i, st := range d.Subtopics {
		subtopics[i] = model.SubTopicInput{
			Title:       st.Title,
			Description: st.Description,
			Definition:  st.Definition,
			Outcome:     st.Outcome,
			Activities:  cloneStrings(st.Activities),
			KeyConcepts: cloneStrings(st.KeyConcepts),
			Duration:    st.Duration,
		}
	}

	in := model.LessonInput{
		Title:       d.Title,
		Description: d.Description,
		Category:    d.Category,
		Subtopics:   subtopics,
	}
	switch lvl := model.NormalizeLevel(d.Category); lvl {
	case util.LevelBeginner, util.LevelIntermediate, util.LevelAdvanced:
		in.Level = lvl
	}
	return in
}
