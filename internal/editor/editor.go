package editor

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown field")
	ErrInvalidValue    = errors.New("invalid value for field")
	ErrUnknownOp       = errors.New("unknown operation")
)

// Draft-level fields accepted by SetField.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCategory    = "category"
)

// Subtopic fields.
const (
	FieldDefinition  = "definition"
	FieldOutcome     = "outcome"
	FieldActivities  = "activities"
	FieldKeyConcepts = "keyConcepts"
)

func SetField(d Draft, field, value string) (Draft, error) {
	out := d.Clone()
	switch field {
	case FieldTitle:
		out.Title = value
	case FieldDescription:
		out.Description = value
	case FieldCategory:
		out.Category = value
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// AddSubtopic appends a placeholder subtopic and makes it the active one.
func AddSubtopic(d Draft) Draft {
	out := d.Clone()
	out.Subtopics = append(out.Subtopics, newPlaceholderSubtopic())
	out.ActiveSubtopic = len(out.Subtopics) - 1
	return out
}

// RemoveSubtopic drops the subtopic at index. A draft always keeps at least
// one subtopic, so removing the last one returns d unchanged.
func RemoveSubtopic(d Draft, index int) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}
	if len(d.Subtopics) <= 1 {
		return d.Clone(), nil
	}

	out := d.Clone()
	out.Subtopics = append(out.Subtopics[:index], out.Subtopics[index+1:]...)
	if out.ActiveSubtopic > len(out.Subtopics)-1 {
		out.ActiveSubtopic = len(out.Subtopics) - 1
	}
	return out, nil
}

// UpdateSubtopicField replaces one field of the subtopic at index. Scalar
// fields take a string, activities and keyConcepts take a non-empty []string;
// an empty list leaves d unchanged.
func UpdateSubtopicField(d Draft, index int, field string, value any) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}

	out := d.Clone()
	st := &out.Subtopics[index]
	switch field {
	case FieldTitle, FieldDescription, FieldDefinition, FieldOutcome:
		s, ok := value.(string)
		if !ok {
			return d, fmt.Errorf("%w %q: want string, got %T", ErrInvalidValue, field, value)
		}
		*scalarField(st, field) = s
	case FieldActivities, FieldKeyConcepts:
		items, ok := toStrings(value)
		if !ok {
			return d, fmt.Errorf("%w %q: want list of strings, got %T", ErrInvalidValue, field, value)
		}
		// same rule as RemoveArrayItem: the list never empties
		if len(items) == 0 {
			return d, nil
		}
		*arrayField(st, field) = items
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return out, nil
}

// AddArrayItem appends an empty entry to activities or keyConcepts.
func AddArrayItem(d Draft, index int, field string) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}
	if !isArrayField(field) {
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	out := d.Clone()
	arr := arrayField(&out.Subtopics[index], field)
	*arr = append(*arr, "")
	return out, nil
}

func UpdateArrayItem(d Draft, index int, field string, itemIndex int, value string) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}
	if !isArrayField(field) {
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	out := d.Clone()
	arr := arrayField(&out.Subtopics[index], field)
	if err := checkIndex(itemIndex, len(*arr)); err != nil {
		return d, err
	}
	(*arr)[itemIndex] = value
	return out, nil
}

// RemoveArrayItem drops one entry of activities or keyConcepts. The array
// keeps at least one entry; removing the last one returns d unchanged.
func RemoveArrayItem(d Draft, index int, field string, itemIndex int) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}
	if !isArrayField(field) {
		return d, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	out := d.Clone()
	arr := arrayField(&out.Subtopics[index], field)
	if err := checkIndex(itemIndex, len(*arr)); err != nil {
		return d, err
	}
	if len(*arr) <= 1 {
		return out, nil
	}
	*arr = append((*arr)[:itemIndex], (*arr)[itemIndex+1:]...)
	return out, nil
}

// Select makes the subtopic at index the active one.
func Select(d Draft, index int) (Draft, error) {
	if err := checkIndex(index, len(d.Subtopics)); err != nil {
		return d, err
	}
	out := d.Clone()
	out.ActiveSubtopic = index
	return out, nil
}

func checkIndex(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d (length %d)", ErrIndexOutOfRange, i, n)
	}
	return nil
}

func isArrayField(field string) bool {
	return field == FieldActivities || field == FieldKeyConcepts
}

func scalarField(st *SubTopic, field string) *string {
	switch field {
	case FieldTitle:
		return &st.Title
	case FieldDescription:
		return &st.Description
	case FieldDefinition:
		return &st.Definition
	default:
		return &st.Outcome
	}
}

func arrayField(st *SubTopic, field string) *[]string {
	if field == FieldActivities {
		return &st.Activities
	}
	return &st.KeyConcepts
}

// toStrings accepts []string and the []any a JSON decoder produces.
func toStrings(v any) ([]string, bool) {
	switch items := v.(type) {
	case []string:
		return cloneStrings(items), true
	case []any:
		out := make([]string, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}
