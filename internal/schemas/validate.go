// Package schemas provides JSON Schema validation for the pipeline's
// structured output artifacts.
package schemas

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/hiring-agent/internal/types"
)

//go:embed evaluation_schema.json
var evaluationSchema string

var (
	compileOnce      sync.Once
	compiledSchema   *gojsonschema.Schema
	compileSchemaErr error
)

// ValidationError carries per-field schema violations. It is the only hard
// failure type the scoring pipeline produces.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("\n  %d. %s: %s", i+1, err.Field, err.Message))
	}
	return sb.String()
}

func schema() (*gojsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiledSchema, compileSchemaErr = gojsonschema.NewSchema(
			gojsonschema.NewStringLoader(evaluationSchema))
	})
	return compiledSchema, compileSchemaErr
}

var structValidator = validator.New()

// ValidateEvaluation checks a finished evaluation against the output
// schema. A nil error means the artifact honors every bound the rubric
// guarantees: category scores within their maxima, bonus within [0, 20],
// and final score within [-20, 120]. Struct tags catch in-memory
// violations; the JSON Schema pass covers the serialized shape.
func ValidateEvaluation(evaluation *types.Evaluation) error {
	if err := structValidator.Struct(evaluation); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			ve := &ValidationError{Errors: make([]FieldError, 0, len(fieldErrs))}
			for _, fe := range fieldErrs {
				ve.Errors = append(ve.Errors, FieldError{
					Field:   fe.Namespace(),
					Message: fmt.Sprintf("failed %q constraint", fe.Tag()),
				})
			}
			return ve
		}
		return err
	}

	data, err := json.Marshal(evaluation)
	if err != nil {
		return fmt.Errorf("failed to serialize evaluation: %w", err)
	}
	return ValidateEvaluationJSON(data)
}

// ValidateEvaluationJSON validates raw evaluation JSON bytes.
func ValidateEvaluationJSON(data []byte) error {
	s, err := schema()
	if err != nil {
		return fmt.Errorf("failed to compile evaluation schema: %w", err)
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
