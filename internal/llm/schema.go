package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// lessonDraftSchema describes the shape the generator is asked for. Required
// top-level fields are checked separately so the error can name them.
const lessonDraftSchema = `{
  "type": "object",
  "properties": {
    "title": {"type": "string"},
    "description": {"type": "string"},
    "subtopics": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["title"],
        "properties": {
          "title": {"type": "string"},
          "description": {"type": "string"},
          "definition": {"type": "string"},
          "outcome": {"type": "string"},
          "activities": {"type": "array", "items": {"type": "string"}},
          "keyConcepts": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var (
	draftSchemaOnce sync.Once
	draftSchema     *jsonschema.Schema
	draftSchemaErr  error
)

func compiledDraftSchema() (*jsonschema.Schema, error) {
	draftSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(lessonDraftSchema)))
		if err != nil {
			draftSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://lesson-draft.json"
		if err := c.AddResource(url, doc); err != nil {
			draftSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		draftSchema, draftSchemaErr = c.Compile(url)
	})
	return draftSchema, draftSchemaErr
}

// ValidateDraftShape checks a generated lesson object against the draft schema.
func ValidateDraftShape(raw json.RawMessage) error {
	schema, err := compiledDraftSchema()
	if err != nil {
		return fmt.Errorf("compile draft schema: %w", err)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return &ErrParse{Err: err}
	}
	if err := schema.Validate(doc); err != nil {
		return &ErrParse{Err: fmt.Errorf("schema validation failed: %w", err)}
	}
	return nil
}
