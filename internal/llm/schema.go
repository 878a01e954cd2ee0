package llm

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// FieldKind is the JSON type of a schema field.
type FieldKind string

const (
	KindNumber      FieldKind = "number"
	KindString      FieldKind = "string"
	KindStringArray FieldKind = "string[]"
)

// SchemaField describes one property of the structured model output.
type SchemaField struct {
	Name        string
	Kind        FieldKind
	Description string
}

// OutputSchema is the analysis output contract, in the order the model must emit it.
var OutputSchema = []SchemaField{
	{
		Name:        "score",
		Kind:        KindNumber,
		Description: "Match score from 0 to 100",
	},
	{
		Name:        "feedbackSummary",
		Kind:        KindString,
		Description: "A concise 2-4 sentence summary of how well the resume matches the job requirements, highlighting key strengths and areas for improvement",
	},
	{
		Name:        "interviewQuestions",
		Kind:        KindStringArray,
		Description: "Array of 5-7 tailored interview questions based on the job requirements and resume analysis",
	},
	{
		Name:        "applicationQuestions",
		Kind:        KindStringArray,
		Description: "Array of 4-6 questions to help the candidate write better application materials (cover letters, essays, \"why this role\" answers)",
	},
}

// FieldNames returns the property names of fields in declaration order.
func FieldNames(fields []SchemaField) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return names
}

// JSONSchema renders fields as a draft-07 JSON Schema object with every field required.
func JSONSchema(fields []SchemaField) ([]byte, error) {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		switch f.Kind {
		case KindNumber:
			props[f.Name] = map[string]any{"type": "number"}
		case KindString:
			props[f.Name] = map[string]any{"type": "string"}
		case KindStringArray:
			props[f.Name] = map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			}
		default:
			return nil, fmt.Errorf("schema field %s: unknown kind %q", f.Name, f.Kind)
		}
	}
	return json.Marshal(map[string]any{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
		"required":   FieldNames(fields),
	})
}

// FieldError is one schema violation in model output.
type FieldError struct {
	Field   string
	Message string
}

// SchemaViolation lists every schema violation found in a model response.
type SchemaViolation struct {
	Errors []FieldError
}

func (v *SchemaViolation) Error() string {
	parts := make([]string, 0, len(v.Errors))
	for _, fe := range v.Errors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

func (v *SchemaViolation) Unwrap() error {
	return ErrMalformedOutput
}

var (
	outputSchemaOnce sync.Once
	outputSchema     *gojsonschema.Schema
	outputSchemaErr  error
)

func compiledOutputSchema() (*gojsonschema.Schema, error) {
	outputSchemaOnce.Do(func() {
		raw, err := JSONSchema(OutputSchema)
		if err != nil {
			outputSchemaErr = err
			return
		}
		outputSchema, outputSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	})
	return outputSchema, outputSchemaErr
}

// ValidateOutput checks raw model output against OutputSchema.
func ValidateOutput(raw []byte) error {
	schema, err := compiledOutputSchema()
	if err != nil {
		return fmt.Errorf("load output schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if result.Valid() {
		return nil
	}
	violation := &SchemaViolation{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		violation.Errors = append(violation.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return violation
}
