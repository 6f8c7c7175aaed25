package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// ParseSchema decodes an object schema from JSON or YAML and checks it is
// well formed.
func ParseSchema(data []byte) (*openapi3.Schema, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, fmt.Errorf("validation: schema document is empty")
	}

	raw := data
	if !json.Valid(data) {
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("validation: parse schema: invalid JSON or YAML: %w", err)
		}
		converted, err := json.Marshal(doc)
		if err != nil {
			return nil, fmt.Errorf("validation: parse schema: %w", err)
		}
		raw = converted
	}

	schema := &openapi3.Schema{}
	if err := json.Unmarshal(raw, schema); err != nil {
		return nil, fmt.Errorf("validation: parse schema: %w", err)
	}
	return checkSchema(schema)
}

// SchemaFromMap builds a schema from an already decoded document, for example
// the schema section of a form definition.
func SchemaFromMap(doc map[string]any) (*openapi3.Schema, error) {
	if len(doc) == 0 {
		return nil, ErrSchemaRequired
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("validation: encode schema: %w", err)
	}
	schema := &openapi3.Schema{}
	if err := json.Unmarshal(raw, schema); err != nil {
		return nil, fmt.Errorf("validation: decode schema: %w", err)
	}
	return checkSchema(schema)
}

func checkSchema(schema *openapi3.Schema) (*openapi3.Schema, error) {
	if err := schema.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validation: invalid schema: %w", err)
	}
	if schema.Type != nil && !schema.Type.Permits(openapi3.TypeObject) {
		return nil, ErrSchemaNotObject
	}
	return schema, nil
}
