package normalize

import (
	"encoding/json"
	"strconv"
)

// Payload is the raw, loosely-typed profile payload returned by an upstream
// provider. It is read-only input to normalization and is never mutated.
type Payload map[string]any

// Has reports whether the key is present in the payload.
func (p Payload) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// String returns the value under key rendered as a string. Numeric JSON
// values are formatted without a fractional part, since providers routinely
// ship identifiers as numbers. Missing keys and non-scalar values yield "".
func (p Payload) String(key string) string {
	v, ok := p[key]
	if !ok {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Nested walks a chain of keys through nested objects. It returns false as
// soon as any level of the chain is absent or not an object.
func (p Payload) Nested(keys ...string) (any, bool) {
	if len(keys) == 0 {
		return nil, false
	}

	var current any = map[string]any(p)
	for _, key := range keys {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// NestedString is Nested rendered as a string, "" when the chain is
// incomplete or the leaf is not a string.
func (p Payload) NestedString(keys ...string) string {
	v, ok := p.Nested(keys...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
