// Package form renders schema-validated forms from a declarative field list.
//
// A Form is built from an ordered []Field, a validation.Validator and a
// submit callback:
//
//	type Credentials struct {
//		Email    string `json:"email"`
//		Password string `json:"password"`
//	}
//
//	f, err := form.New(fields, validator, func(ctx context.Context, c Credentials) error {
//		return login(ctx, c)
//	}, form.WithResetButton(true))
//
// Fields render through their Component when set and through DefaultControl
// otherwise. User events map to method calls: Change, Blur, Submit and Reset.
// Submit only calls the callback with a record that passed validation.
package form
