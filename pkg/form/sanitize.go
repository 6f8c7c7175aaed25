package form

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce    sync.Once
	textPolicy        *bluemonday.Policy
	controlPolicyOnce sync.Once
	controlPolicy     *bluemonday.Policy
)

// sanitizeDescription keeps inline formatting in descriptions and drops
// anything executable.
func sanitizeDescription(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(descriptionSanitizer().Sanitize(trimmed))
}

// sanitizeControl cleans custom component output. Form controls survive;
// scripts, event handler attributes and nested forms do not.
func sanitizeControl(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(controlSanitizer().Sanitize(trimmed))
}

func descriptionSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "code", "small", "br")
		policy.AllowStandardURLs()
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireNoFollowOnLinks(true)
		textPolicy = policy
	})
	return textPolicy
}

func controlSanitizer() *bluemonday.Policy {
	controlPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowElements("input", "textarea", "select", "option", "optgroup", "label", "button", "fieldset", "legend", "output")

		policy.AllowAttrs(
			"type", "name", "value", "placeholder", "checked", "disabled", "readonly",
			"required", "autocomplete", "min", "max", "step", "minlength", "maxlength",
		).OnElements("input")
		policy.AllowAttrs("name", "rows", "cols", "placeholder", "disabled", "readonly", "required", "maxlength").OnElements("textarea")
		policy.AllowAttrs("name", "multiple", "disabled", "required").OnElements("select")
		policy.AllowAttrs("value", "selected", "disabled", "label").OnElements("option")
		policy.AllowAttrs("label", "disabled").OnElements("optgroup")
		policy.AllowAttrs("for").OnElements("label", "output")
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button")

		policy.AllowAttrs("id", "class", "role", "aria-invalid", "aria-describedby", "aria-label").Globally()
		policy.AllowDataAttributes()
		controlPolicy = policy
	})
	return controlPolicy
}
