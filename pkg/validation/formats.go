package validation

import (
	"errors"
	"net/mail"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

var formatsOnce sync.Once

var errInvalidEmail = errors.New("not an email address")

// registerFormats installs the string formats forms rely on unless the host
// application already defined them.
func registerFormats() {
	formatsOnce.Do(func() {
		if _, exists := openapi3.SchemaStringFormats["email"]; !exists {
			openapi3.DefineStringFormatValidator("email", openapi3.NewCallbackValidator(validateEmail))
		}
	})
}

func validateEmail(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || trimmed != value {
		return errInvalidEmail
	}
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return errInvalidEmail
	}
	if at := strings.LastIndex(value, "@"); at < 1 || !strings.Contains(value[at+1:], ".") {
		return errInvalidEmail
	}
	return nil
}
