package normalize

import (
	"strings"
	"unicode"
)

// SplitList splits a separator-delimited list of variable names.
// Entries are trimmed, empty entries are dropped and duplicates keep their first position.
// Examples:
//   - "A,B" → ["A", "B"]
//   - " A , ,B,A" → ["A", "B"]
//   - "" → []
func SplitList(list, sep string) []string {
	if sep == "" {
		sep = ","
	}
	names := make([]string, 0)
	for _, part := range strings.Split(list, sep) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		names = append(names, part)
	}
	return Dedupe(names)
}

// Dedupe removes repeated names while preserving declaration order.
func Dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// ToEnvName derives an environment variable name from a struct field name.
// Word boundaries become underscores and the result is upper-cased.
// Examples:
//   - "Port" → "PORT"
//   - "DatabaseURL" → "DATABASE_URL"
//   - "APIKey" → "API_KEY"
func ToEnvName(fieldName string) string {
	if fieldName == "" {
		return ""
	}

	runes := []rune(fieldName)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// ApplyPrefix combines a prefix with a variable name.
// If prefix is empty, returns the name unchanged.
// Examples:
//   - ApplyPrefix("APP_", "PORT") → "APP_PORT"
//   - ApplyPrefix("", "PORT") → "PORT"
func ApplyPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + name
}
