package validation

import (
	"sort"
	"strconv"
	"strings"
)

// CodeServer marks errors reported by a submit handler rather than the schema.
const CodeServer = "server"

var payloadWrappers = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

// FromPayload converts a server error payload keyed by field path into
// FieldErrors. Paths may be plain names, dotted paths or JSON pointers, and
// may be nested under request wrappers such as "body" or "data". Paths that
// do not resolve to one of keys become form-level errors. Multiple messages
// for one field are joined.
func FromPayload(payload map[string][]string, keys []string) FieldErrors {
	if len(payload) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		known[key] = struct{}{}
	}

	paths := make([]string, 0, len(payload))
	for path := range payload {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	fields := make(map[string][]string)
	var form []string
	for _, path := range paths {
		messages := dedupeMessages(payload[path])
		if len(messages) == 0 {
			continue
		}
		field := resolvePayloadPath(path, known)
		if field == "" {
			form = append(form, messages...)
			continue
		}
		fields[field] = append(fields[field], messages...)
	}

	out := make(FieldErrors, 0, len(fields)+len(form))
	for _, key := range keys {
		messages := dedupeMessages(fields[key])
		if len(messages) == 0 {
			continue
		}
		out = append(out, FieldError{Field: key, Code: CodeServer, Message: strings.Join(messages, "; ")})
	}
	for _, message := range dedupeMessages(form) {
		out = append(out, FieldError{Code: CodeServer, Message: message})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func resolvePayloadPath(raw string, known map[string]struct{}) string {
	if isFormLevelPath(raw) {
		return ""
	}
	segments := payloadSegments(raw)
	for len(segments) > 0 {
		if _, ok := payloadWrappers[strings.ToLower(segments[0])]; !ok {
			break
		}
		segments = segments[1:]
	}
	for _, segment := range segments {
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		if _, ok := known[segment]; ok {
			return segment
		}
		return ""
	}
	return ""
}

func payloadSegments(path string) []string {
	clean := strings.TrimSpace(path)
	clean = strings.TrimLeft(clean, "#$/.")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		out = append(out, part)
	}
	return out
}

func isFormLevelPath(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}

func dedupeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
