package editor

import "fmt"

// Operation names accepted by Apply.
const (
	OpSetField            = "setField"
	OpAddSubtopic         = "addSubtopic"
	OpRemoveSubtopic      = "removeSubtopic"
	OpUpdateSubtopicField = "updateSubtopicField"
	OpAddArrayItem        = "addArrayItem"
	OpUpdateArrayItem     = "updateArrayItem"
	OpRemoveArrayItem     = "removeArrayItem"
	OpSelect              = "select"
)

// Operation is the serializable form of one editor call.
type Operation struct {
	Op        string `json:"op" binding:"required"`
	Index     int    `json:"index"`
	Field     string `json:"field,omitempty"`
	ItemIndex int    `json:"itemIndex"`
	Value     any    `json:"value,omitempty"`
}

// Apply runs op against d.
func Apply(d Draft, op Operation) (Draft, error) {
	switch op.Op {
	case OpSetField:
		s, ok := op.Value.(string)
		if !ok {
			return d, fmt.Errorf("%w %q: want string, got %T", ErrInvalidValue, op.Field, op.Value)
		}
		return SetField(d, op.Field, s)
	case OpAddSubtopic:
		return AddSubtopic(d), nil
	case OpRemoveSubtopic:
		return RemoveSubtopic(d, op.Index)
	case OpUpdateSubtopicField:
		return UpdateSubtopicField(d, op.Index, op.Field, op.Value)
	case OpAddArrayItem:
		return AddArrayItem(d, op.Index, op.Field)
	case OpUpdateArrayItem:
		s, ok := op.Value.(string)
		if !ok {
			return d, fmt.Errorf("%w %q: want string, got %T", ErrInvalidValue, op.Field, op.Value)
		}
		return UpdateArrayItem(d, op.Index, op.Field, op.ItemIndex, s)
	case OpRemoveArrayItem:
		return RemoveArrayItem(d, op.Index, op.Field, op.ItemIndex)
	case OpSelect:
		return Select(d, op.Index)
	default:
		return d, fmt.Errorf("%w: %q", ErrUnknownOp, op.Op)
	}
}
