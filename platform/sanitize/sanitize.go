// Package sanitize provides text sanitization utilities to prevent XSS attacks.
package sanitize

import (
	"regexp"
	"strings"
)

// MaxTextLen bounds every sanitized string; longer input is truncated.
const MaxTextLen = 1000

var (
	// Paired dangerous blocks are removed wholesale, content included.
	blockRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
		regexp.MustCompile(`(?is)<iframe\b[^>]*>.*?</iframe\s*>`),
		regexp.MustCompile(`(?is)<object\b[^>]*>.*?</object\s*>`),
		regexp.MustCompile(`(?is)<embed\b[^>]*>.*?</embed\s*>`),
		regexp.MustCompile(`(?is)<form\b[^>]*>.*?</form\s*>`),
	}

	// Orphan opening/closing tags of the same elements.
	orphanTagRegex = regexp.MustCompile(`(?i)</?(?:script|iframe|object|embed|form)\b[^>]*>`)

	// Inline event handler attributes: onclick=, onerror=, onload=, ...
	eventHandlerRegex = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	// Executable URL schemes.
	protocolRegex = regexp.MustCompile(`(?i)(?:javascript|vbscript|data)\s*:`)
)

// Text sanitizes a user-provided string for safe storage and interpolation
// into downstream lookups. It is total and idempotent: applying it twice
// yields the same result as applying it once.
func Text(s string) string {
	for _, re := range blockRegexes {
		s = re.ReplaceAllString(s, "")
	}
	s = orphanTagRegex.ReplaceAllString(s, "")
	s = eventHandlerRegex.ReplaceAllString(s, "")
	s = protocolRegex.ReplaceAllString(s, "")

	s = encodeEntities(s)

	if runes := []rune(s); len(runes) > MaxTextLen {
		s = string(runes[:MaxTextLen])
	}
	return strings.TrimSpace(s)
}

// encodeEntities HTML-encodes the characters that could open markup or break
// out of an attribute. Already-encoded entities are left alone so Text stays
// idempotent.
func encodeEntities(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '\'':
			b.WriteString("&#x27;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Value sanitizes arbitrary decoded JSON values. Strings go through Text,
// slices and maps are recursed element-wise, everything else passes through
// unchanged.
func Value(v interface{}) interface{} {
	switch typed := v.(type) {
	case string:
		return Text(typed)
	case []string:
		out := make([]string, len(typed))
		for i, item := range typed {
			out[i] = Text(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(typed))
		for i, item := range typed {
			out[i] = Value(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(typed))
		for key, item := range typed {
			out[key] = Value(item)
		}
		return out
	default:
		return v
	}
}

// Strings sanitizes a string slice in place and returns it.
func Strings(items []string) []string {
	for i, item := range items {
		items[i] = Text(item)
	}
	return items
}

// TextPtr is a helper for optional string pointers.
func TextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	result := Text(*s)
	return &result
}
