package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ErrorMessageExtension lets a property schema override generated messages.
// The value is either a string used for every failure or an object keyed by
// schema keyword ("minLength", "format", "required", ...).
const ErrorMessageExtension = "x-error-message"

func describeSchemaError(err *openapi3.SchemaError) (string, string) {
	schema := err.Schema
	switch err.SchemaField {
	case "required", "nullable":
		return CodeRequired, "This field is required"
	case "minLength":
		if schema != nil {
			return CodeTooShort, fmt.Sprintf("Must be at least %d characters", schema.MinLength)
		}
		return CodeTooShort, "Too short"
	case "maxLength":
		if schema != nil && schema.MaxLength != nil {
			return CodeTooLong, fmt.Sprintf("Must be at most %d characters", *schema.MaxLength)
		}
		return CodeTooLong, "Too long"
	case "minimum":
		if schema != nil && schema.Min != nil {
			return CodeTooSmall, "Must be greater than or equal to " + formatNumber(*schema.Min)
		}
		return CodeTooSmall, "Too small"
	case "maximum":
		if schema != nil && schema.Max != nil {
			return CodeTooBig, "Must be less than or equal to " + formatNumber(*schema.Max)
		}
		return CodeTooBig, "Too big"
	case "pattern":
		return CodePattern, "Has an invalid format"
	case "format":
		format := ""
		if schema != nil {
			format = schema.Format
		}
		switch format {
		case "email":
			return CodeInvalidFormat, "Must be a valid email address"
		case "":
			return CodeInvalidFormat, "Has an invalid format"
		default:
			return CodeInvalidFormat, fmt.Sprintf("Must be a valid %s", format)
		}
	case "enum":
		return CodeInvalidEnum, "Must be one of the allowed values"
	case "type":
		if schema != nil && schema.Type != nil && len(schema.Type.Slice()) > 0 {
			return CodeInvalidType, "Must be a " + strings.Join(schema.Type.Slice(), " or ")
		}
		return CodeInvalidType, "Has an invalid type"
	case "properties", "additionalProperties":
		return CodeUnknownKey, capitalize(err.Reason)
	default:
		return CodeInvalid, capitalize(err.Reason)
	}
}

func extensionMessage(extensions map[string]any, keyword string) string {
	if len(extensions) == 0 {
		return ""
	}
	switch value := extensions[ErrorMessageExtension].(type) {
	case string:
		return strings.TrimSpace(value)
	case map[string]any:
		if msg, ok := value[keyword].(string); ok {
			return strings.TrimSpace(msg)
		}
		if msg, ok := value["default"].(string); ok {
			return strings.TrimSpace(msg)
		}
	}
	return ""
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func capitalize(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		return "Invalid value"
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
