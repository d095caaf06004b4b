package envcheck

import (
	"os"
	"regexp"
)

// Store is the key/value table the checker reads variables from.
// Reads happen at call time, so mutations between calls are observed.
type Store interface {
	// Lookup returns the value of name and whether it is set.
	Lookup(name string) (string, bool)

	// Set assigns value to name.
	Set(name, value string) error
}

// processEnv is the Store backed by the process environment.
type processEnv struct{}

func (processEnv) Lookup(name string) (string, bool) { return os.LookupEnv(name) }

func (processEnv) Set(name, value string) error { return os.Setenv(name, value) }

// Optional distinguishes "not set" from "zero value".
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Get returns the wrapped value and whether it was set.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Set
}

// OrDefault returns the wrapped value or the provided default.
func (o Optional[T]) OrDefault(defaultVal T) T {
	if o.Set {
		return o.Value
	}
	return defaultVal
}

// Predicate is a custom validation rule. It returns false when value is rejected.
type Predicate func(value string) bool

// TransformFunc maps a raw value to a richer one.
type TransformFunc func(value string) (any, error)

// Range bounds a numeric variable. Either bound may be unset.
type Range struct {
	Min Optional[float64]
	Max Optional[float64]
}

// RuleSet holds the five rule families, each keyed by variable name.
// A variable may appear in any number of families.
type RuleSet struct {
	Regex       map[string]*regexp.Regexp
	Format      map[string]Format
	Custom      map[string]Predicate
	NumberRange map[string]Range
	Transform   map[string]TransformFunc
}

// Outcome is the result of validating a single variable.
type Outcome struct {
	Valid  bool
	Errors []string // Messages in evaluation order
	Issues []Issue  // Structured form of Errors
	Value  any      // Transformed value, or the raw string
}

// BatchOutcome is the result of validating several variables.
type BatchOutcome struct {
	Valid  bool
	Errors []string
	Issues []Issue
	Values map[string]any
}

// Result is the report produced by Checker.Check.
type Result struct {
	Valid bool

	MissingVars         []string
	PresentVars         []string
	OptionalPresentVars []string
	OptionalMissingVars []string

	Errors           []string // Presence failures
	ValidationErrors []string // Rule failures on present variables
	Issues           []Issue  // Structured form of Errors and ValidationErrors

	// TransformedVars holds a value for every present variable.
	TransformedVars map[string]any
}

// Err returns a *ValidationError describing every issue, or nil when the result is valid.
func (r *Result) Err() error {
	if r == nil || r.Valid {
		return nil
	}
	return &ValidationError{Issues: r.Issues}
}
