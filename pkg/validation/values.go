package validation

import (
	"encoding/json"
	"fmt"
)

// Values is a form record keyed by field name.
type Values map[string]any

// Clone returns a deep copy of v. Nested maps and slices are copied so the
// clone can be mutated without touching the source.
func (v Values) Clone() Values {
	if v == nil {
		return Values{}
	}
	out := make(Values, len(v))
	for key, value := range v {
		out[key] = deepCopy(value)
	}
	return out
}

// Pick returns a copy of v restricted to keys. Missing keys are skipped.
func (v Values) Pick(keys []string) Values {
	out := make(Values, len(keys))
	for _, key := range keys {
		if value, ok := v[key]; ok {
			out[key] = deepCopy(value)
		}
	}
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case Values:
		return typed.Clone()
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	case []string:
		return append([]string(nil), typed...)
	default:
		return typed
	}
}

// toJSONValues converts arbitrary Go values into the JSON data model
// (map[string]any, []any, float64, string, bool, nil) expected by the schema
// visitor.
func toJSONValues(values Values) (map[string]any, error) {
	if len(values) == 0 {
		return map[string]any{}, nil
	}
	raw, err := json.Marshal(map[string]any(values))
	if err != nil {
		return nil, fmt.Errorf("validation: encode values: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("validation: decode values: %w", err)
	}
	return out, nil
}
