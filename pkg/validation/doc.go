// Package validation defines the narrow validator contract forms depend on and
// ships a kin-openapi backed implementation.
//
// A Validator receives the candidate record and returns either the validated
// record or per-field errors:
//
//	schema := openapi3.NewObjectSchema().
//		WithProperty("email", openapi3.NewStringSchema().WithFormat("email")).
//		WithProperty("password", openapi3.NewStringSchema().WithMinLength(6)).
//		WithRequired([]string{"email", "password"})
//
//	validator, err := validation.NewSchemaValidator(schema)
//	out, errs := validator.Validate(ctx, validation.Values{"email": "a@b.co"})
//
// Any other schema library can be plugged in through ValidatorFunc.
package validation
