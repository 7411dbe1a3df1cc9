package validator

import (
	"math"
	"strings"
)

// Kind names the shape a boundary field must conform to before it is
// accepted into a request object.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindEmail   Kind = "email"
	KindURL     Kind = "url"
	KindUUID    Kind = "uuid"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
)

// maxStringLen mirrors the sanitizer's truncation bound; anything longer is
// rejected outright instead of silently shortened.
const maxStringLen = 1000

// ValidateKind reports whether value conforms to the given kind. It never
// panics; an unknown kind is simply invalid.
func (val *Validator) ValidateKind(value interface{}, kind Kind) bool {
	switch kind {
	case KindString:
		s, ok := value.(string)
		if !ok {
			return false
		}
		if len([]rune(s)) > maxStringLen {
			return false
		}
		return !strings.Contains(strings.ToLower(s), "<script")
	case KindNumber:
		f, ok := toFloat(value)
		if !ok {
			return false
		}
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	case KindEmail:
		s, ok := value.(string)
		return ok && val.Var(s, "email") == nil
	case KindURL:
		s, ok := value.(string)
		return ok && val.Var(s, "url") == nil
	case KindUUID:
		s, ok := value.(string)
		return ok && val.Var(s, "uuid") == nil
	case KindBoolean:
		_, ok := value.(bool)
		return ok
	case KindArray:
		switch value.(type) {
		case []interface{}, []string, []int, []float64:
			return true
		}
		return false
	default:
		return false
	}
}

func toFloat(value interface{}) (float64, bool) {
	switch typed := value.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case int64:
		return float64(typed), true
	}
	return 0, false
}
