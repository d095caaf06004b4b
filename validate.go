package envcheck

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"go.uber.org/zap"
)

// NewRuleSet fills every family omitted from partial with an empty map,
// so callers can configure a single family.
func NewRuleSet(partial RuleSet) RuleSet {
	rules := partial
	if rules.Regex == nil {
		rules.Regex = make(map[string]*regexp.Regexp)
	}
	if rules.Format == nil {
		rules.Format = make(map[string]Format)
	}
	if rules.Custom == nil {
		rules.Custom = make(map[string]Predicate)
	}
	if rules.NumberRange == nil {
		rules.NumberRange = make(map[string]Range)
	}
	if rules.Transform == nil {
		rules.Transform = make(map[string]TransformFunc)
	}
	return rules
}

// Engine evaluates a RuleSet against variable values.
type Engine struct {
	rules  RuleSet
	logger *zap.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithEngineLogger sets the logger used for rule failures. Default: no-op.
func WithEngineLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an Engine for rules.
func NewEngine(rules RuleSet, opts ...EngineOption) *Engine {
	e := &Engine{
		rules:  NewRuleSet(rules),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() RuleSet {
	return e.rules
}

// Validate evaluates every rule configured for name against value.
// All families run; the outcome lists every failure in the order
// regex, format, custom, number range, transform.
//
// A panicking custom predicate is not recovered. A failing transform is
// reported as an issue and the outcome keeps the raw value.
func (e *Engine) Validate(name, value string) Outcome {
	out := Outcome{Errors: make([]string, 0), Issues: make([]Issue, 0), Value: value}

	// Step 1: Regex
	if re, ok := e.rules.Regex[name]; ok && re != nil {
		if !re.MatchString(value) {
			out.add(name, ErrCodeRegex, fmt.Sprintf("Variable %s does not match regex pattern: /%s/", name, re.String()))
		}
	}

	// Step 2: Predefined format
	if f, ok := e.rules.Format[name]; ok {
		if !ValidFormat(f, value) {
			out.add(name, ErrCodeFormat, fmt.Sprintf("Variable %s is not a valid %s", name, f))
		}
	}

	// Step 3: Custom predicate
	if pred, ok := e.rules.Custom[name]; ok && pred != nil {
		if !pred(value) {
			out.add(name, ErrCodeCustom, fmt.Sprintf("Variable %s failed custom validation", name))
		}
	}

	// Step 4: Number range
	if r, ok := e.rules.NumberRange[name]; ok {
		out.checkRange(name, value, r)
	}

	// Step 5: Transform
	if fn, ok := e.rules.Transform[name]; ok && fn != nil {
		transformed, err := runTransform(fn, value)
		if err != nil {
			out.add(name, ErrCodeTransform, fmt.Sprintf("Failed to transform %s: %v", name, err))
		} else {
			out.Value = transformed
		}
	}

	// Step 6: Verdict
	out.Valid = len(out.Issues) == 0
	if !out.Valid {
		e.logger.Debug("variable failed validation",
			zap.String("name", name),
			zap.Int("issues", len(out.Issues)),
		)
	}

	return out
}

// ValidateAll validates every entry of vars in lexical name order and
// concatenates the per-variable errors in that order.
func (e *Engine) ValidateAll(vars map[string]string) BatchOutcome {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return e.ValidateOrdered(names, vars)
}

// ValidateOrdered validates the names present in vars in the given order.
// Names missing from vars are skipped.
func (e *Engine) ValidateOrdered(names []string, vars map[string]string) BatchOutcome {
	batch := BatchOutcome{
		Errors: make([]string, 0),
		Issues: make([]Issue, 0),
		Values: make(map[string]any, len(names)),
	}

	for _, name := range names {
		value, ok := vars[name]
		if !ok {
			continue
		}
		out := e.Validate(name, value)
		batch.Errors = append(batch.Errors, out.Errors...)
		batch.Issues = append(batch.Issues, out.Issues...)
		batch.Values[name] = out.Value
	}

	batch.Valid = len(batch.Errors) == 0
	return batch
}

// add appends one failure to the outcome.
func (o *Outcome) add(name, code, message string) {
	o.Errors = append(o.Errors, message)
	o.Issues = append(o.Issues, Issue{Name: name, Code: code, Message: message})
}

// checkRange coerces value to a number and checks each configured bound independently.
func (o *Outcome) checkRange(name, value string, r Range) {
	n, ok := parseNumber(value)
	if !ok {
		o.add(name, ErrCodeInvalidNumber, fmt.Sprintf("Variable %s is not a valid number", name))
		return
	}

	if lo, set := r.Min.Get(); set && n < lo {
		o.add(name, ErrCodeMin, fmt.Sprintf("Variable %s must be >= %s", name, formatNumber(lo)))
	}
	if hi, set := r.Max.Get(); set && n > hi {
		o.add(name, ErrCodeMax, fmt.Sprintf("Variable %s must be <= %s", name, formatNumber(hi)))
	}
}

// runTransform calls fn, converting a panic into an error.
func runTransform(fn TransformFunc, value string) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return fn(value)
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
