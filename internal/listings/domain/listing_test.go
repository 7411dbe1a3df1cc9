package domain

import "testing"

func TestMinPrice(t *testing.T) {
	cases := []struct {
		name     string
		variants []Variant
		want     float64
	}{
		{"no variants", nil, 0},
		{"single variant", []Variant{{Label: "1BHK", Price: "8000"}}, 8000},
		{"picks minimum", []Variant{{Price: "12000"}, {Price: "8500"}, {Price: "15000"}}, 8500},
		{"non-numeric price counts as zero", []Variant{{Price: "call us"}, {Price: "9000"}}, 0},
		{"whitespace tolerated", []Variant{{Price: " 7500 "}}, 7500},
		{"decimal price", []Variant{{Price: "7999.50"}}, 7999.50},
		{"empty price string", []Variant{{Price: ""}}, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := ListingSummary{Variants: tc.variants}
			if got := l.MinPrice(); got != tc.want {
				t.Errorf("MinPrice() = %v, want %v", got, tc.want)
			}
		})
	}
}

// The stored min_price column coerces prices with the same trimmed pattern
// variantPrice uses; the forms below must price identically on both sides so
// a bound filters the same set regardless of the tier that produced it.
func TestMinPrice_AgreesWithStoredColumnCoercion(t *testing.T) {
	cases := []struct {
		name  string
		price string
		want  float64
	}{
		{"padded integer", " 7500 ", 7500},
		{"explicit plus sign", "+500", 500},
		{"negative", "-500", -500},
		{"scientific notation", "1e3", 1000},
		{"bare leading decimal", ".5", 0.5},
		{"trailing decimal point", "1.", 1},
		{"underscore separator rejected", "1_000", 0},
		{"hex float rejected", "0x10p0", 0},
		{"infinity rejected", "Inf", 0},
		{"nan rejected", "NaN", 0},
		{"embedded text rejected", "7500 rupees", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			l := ListingSummary{Variants: []Variant{{Price: tc.price}}}
			if got := l.MinPrice(); got != tc.want {
				t.Errorf("MinPrice() with price %q = %v, want %v", tc.price, got, tc.want)
			}
		})
	}
}

func TestParsePropertyType(t *testing.T) {
	cases := []struct {
		input string
		want  PropertyType
		ok    bool
	}{
		{"flat", PropertyFlat, true},
		{"FLAT", PropertyFlat, true},
		{" house ", PropertyHouse, true},
		{"pg", PropertyPG, true},
		{"castle", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParsePropertyType(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParsePropertyType(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseSortKey(t *testing.T) {
	cases := []struct {
		input string
		want  SortKey
		ok    bool
	}{
		{"PRICE", SortPrice, true},
		{"price", SortPrice, true},
		{"created_at", SortCreatedAt, true},
		{"relevance", SortRelevance, true},
		{"rating", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseSortKey(tc.input)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseSortKey(%q) = (%q, %v), want (%q, %v)", tc.input, got, ok, tc.want, tc.ok)
		}
	}
}
