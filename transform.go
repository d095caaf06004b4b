package envcheck

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var truthy = map[string]bool{"true": true, "1": true, "yes": true, "on": true}

var falsy = map[string]bool{"false": true, "0": true, "no": true, "off": true}

// ToBoolean is lenient: {true, 1, yes, on} in any case are true and everything else is false.
func ToBoolean(value string) bool {
	return truthy[strings.ToLower(value)]
}

// ToNumber coerces value to a float64, returning NaN when it is not numeric.
func ToNumber(value string) float64 {
	n, ok := parseNumber(value)
	if !ok {
		return math.NaN()
	}
	return n
}

// ToLowerCase lower-cases value.
func ToLowerCase(value string) string { return strings.ToLower(value) }

// ToUpperCase upper-cases value.
func ToUpperCase(value string) string { return strings.ToUpper(value) }

// Trim removes leading and trailing whitespace.
func Trim(value string) string { return strings.TrimSpace(value) }

// ToArray splits value on sep (default ",") and trims every element.
// An empty value yields a single empty element.
func ToArray(value string, sep ...string) []string {
	separator := ","
	if len(sep) > 0 && sep[0] != "" {
		separator = sep[0]
	}
	parts := strings.Split(value, separator)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// ToObject decodes value as JSON. Undecodable input is returned unchanged.
func ToObject(value string) any {
	var out any
	if err := json.Unmarshal([]byte(value), &out); err != nil {
		return value
	}
	return out
}

// parseNumber mirrors loose numeric coercion: surrounding whitespace is ignored,
// blank input is zero, 0x/0o/0b prefixes and Infinity are accepted.
func parseNumber(value string) (float64, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return 0, true
	}

	switch s {
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0o") || strings.HasPrefix(lower, "0b") {
		if strings.Contains(s, "_") {
			return 0, false
		}
		n, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return 0, false
		}
		return float64(n), true
	}

	// ParseFloat accepts spellings like "inf" and "nan" that are not numbers here.
	for _, r := range lower {
		if !strings.ContainsRune("0123456789+-.e", r) {
			return 0, false
		}
	}

	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Overflow still parses, to ±Inf.
		if errors.Is(err, strconv.ErrRange) {
			return n, true
		}
		return 0, false
	}
	return n, true
}

// parseBool is strict: unrecognized spellings are rejected.
func parseBool(value string) (bool, bool) {
	lower := strings.ToLower(value)
	if truthy[lower] {
		return true, true
	}
	if falsy[lower] {
		return false, true
	}
	return false, false
}

var transformers = map[string]TransformFunc{
	"lowerCase":   func(v string) (any, error) { return ToLowerCase(v), nil },
	"upperCase":   func(v string) (any, error) { return ToUpperCase(v), nil },
	"trim":        func(v string) (any, error) { return Trim(v), nil },
	"toNumber":    func(v string) (any, error) { return ToNumber(v), nil },
	"toBoolean":   func(v string) (any, error) { return ToBoolean(v), nil },
	"toArray":     func(v string) (any, error) { return ToArray(v), nil },
	"toObject":    func(v string) (any, error) { return ToObject(v), nil },
	"toLowerCase": func(v string) (any, error) { return ToLowerCase(v), nil },
	"toUpperCase": func(v string) (any, error) { return ToUpperCase(v), nil },
}

// Transformer looks up a built-in transformer by name
// (lowerCase, upperCase, trim, toNumber, toBoolean, toArray, toObject).
func Transformer(name string) (TransformFunc, error) {
	fn, ok := transformers[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}
	return fn, nil
}

// StrictNumber is a transform that fails on non-numeric input instead of producing NaN.
func StrictNumber(value string) (any, error) {
	n, ok := parseNumber(value)
	if !ok {
		return nil, fmt.Errorf("%q is not a number", value)
	}
	return n, nil
}

// StrictBoolean is a transform that fails on unrecognized boolean spellings.
func StrictBoolean(value string) (any, error) {
	b, ok := parseBool(value)
	if !ok {
		return nil, fmt.Errorf("%q is not a boolean", value)
	}
	return b, nil
}
