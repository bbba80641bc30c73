// Package schemas provides JSON Schema presence checks for webhook responses.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names
const (
	GenerationResponse   = "generation_response.schema.json"
	RegenerationResponse = "regeneration_response.schema.json"
)

// ValidationError lists the fields of a document that do not satisfy the schema
type ValidationError struct {
	Errors []FieldError
}

// FieldError is one failed check at a field path
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// LoadError reports a schema that cannot be compiled or a document that is not JSON.
type LoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("schema %s: %s", e.Name, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// compiled holds schemas already parsed from the embedded files
var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// schemaFor returns the compiled schema for an embedded file name.
func schemaFor(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	raw, err := schemaFiles.ReadFile(name)
	if err != nil {
		return nil, &LoadError{Name: name, Message: "schema not embedded", Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, &LoadError{Name: name, Message: "invalid schema", Cause: err}
	}
	compiled[name] = schema
	return schema, nil
}

// Validate checks a JSON document against one of the embedded schemas.
// Only the presence and type of the fields the application reads are checked.
func Validate(name string, document []byte) error {
	schema, err := schemaFor(name)
	if err != nil {
		return err
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &LoadError{Name: name, Message: "document is not valid JSON", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
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
