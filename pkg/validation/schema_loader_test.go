package validation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-formkit/pkg/validation"
)

const yamlSchema = `
type: object
required: [email, password]
properties:
  email:
    type: string
    format: email
  password:
    type: string
    minLength: 6
    x-error-message:
      minLength: Use at least six characters
`

func TestParseSchemaYAML(t *testing.T) {
	schema, err := validation.ParseSchema([]byte(yamlSchema))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}

	validator, err := validation.NewSchemaValidator(schema)
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	_, errs := validator.Validate(context.Background(), validation.Values{
		"email":    "test@gmail.com",
		"password": "abc",
	})
	got, ok := errs.For("password")
	if !ok {
		t.Fatalf("expected password error, got %v", errs)
	}
	if got.Message != "Use at least six characters" {
		t.Fatalf("expected custom message from extension, got %q", got.Message)
	}
}

func TestParseSchemaJSON(t *testing.T) {
	schema, err := validation.ParseSchema([]byte(`{"type":"object","properties":{"name":{"type":"string","maxLength":3}}}`))
	if err != nil {
		t.Fatalf("parse schema: %v", err)
	}
	if schema.Properties["name"] == nil || schema.Properties["name"].Value == nil {
		t.Fatalf("expected name property to be resolved")
	}
}

func TestParseSchemaErrors(t *testing.T) {
	if _, err := validation.ParseSchema([]byte("   ")); err == nil {
		t.Fatalf("expected error for empty document")
	}
	if _, err := validation.ParseSchema([]byte(`{"type":"string"}`)); !errors.Is(err, validation.ErrSchemaNotObject) {
		t.Fatalf("expected ErrSchemaNotObject, got %v", err)
	}
	if _, err := validation.SchemaFromMap(nil); !errors.Is(err, validation.ErrSchemaRequired) {
		t.Fatalf("expected ErrSchemaRequired, got %v", err)
	}
}
