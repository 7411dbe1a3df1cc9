package validator

import (
	"math"
	"strings"
	"testing"
)

func TestValidateKind(t *testing.T) {
	val := New()

	cases := []struct {
		name  string
		value interface{}
		kind  Kind
		want  bool
	}{
		{"plain string", "Mandsaur", KindString, true},
		{"empty string", "", KindString, true},
		{"string with script tag", "<script>alert(1)</script>", KindString, false},
		{"string with mixed-case script tag", "<ScRiPt>", KindString, false},
		{"overlong string", strings.Repeat("a", 1001), KindString, false},
		{"string at max length", strings.Repeat("a", 1000), KindString, true},
		{"non-string for string kind", 42, KindString, false},

		{"float number", 12.5, KindNumber, true},
		{"int number", 42, KindNumber, true},
		{"NaN", math.NaN(), KindNumber, false},
		{"positive infinity", math.Inf(1), KindNumber, false},
		{"negative infinity", math.Inf(-1), KindNumber, false},
		{"string for number kind", "12", KindNumber, false},

		{"valid email", "owner@example.com", KindEmail, true},
		{"invalid email", "not-an-email", KindEmail, false},
		{"valid url", "https://example.com/listings", KindURL, true},
		{"invalid url", "not a url", KindURL, false},
		{"valid uuid", "6ba7b810-9dad-11d1-80b4-00c04fd430c8", KindUUID, true},
		{"invalid uuid", "123", KindUUID, false},

		{"bool", true, KindBoolean, true},
		{"string for bool", "true", KindBoolean, false},

		{"string slice", []string{"a"}, KindArray, true},
		{"interface slice", []interface{}{1, "a"}, KindArray, true},
		{"scalar for array", "a", KindArray, false},

		{"unknown kind", "x", Kind("blob"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := val.ValidateKind(tc.value, tc.kind); got != tc.want {
				t.Errorf("ValidateKind(%v, %s) = %v, want %v", tc.value, tc.kind, got, tc.want)
			}
		})
	}
}
