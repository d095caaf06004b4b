package envcheck

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Defaults applied by New.
const (
	DefaultEnvFile     = ".env"
	DefaultErrorPrefix = "[ENV-CHECKER]"
)

// Options configures which variables a Checker expects and how they are validated.
type Options struct {
	// EnvFile is the env file loaded at construction. Default: ".env".
	// Relative paths are resolved against the working directory.
	EnvFile string

	// RequiredVars must be present and non-empty.
	RequiredVars []string

	// OptionalVars are reported and validated when present, never required.
	OptionalVars []string

	// LoadEnvFile controls loading EnvFile at construction. Default: true.
	LoadEnvFile Optional[bool]

	// Strict turns any invalid state into a fatal error (see WithFatalHandler).
	Strict bool

	// ErrorPrefix starts every presence message. Default: "[ENV-CHECKER]".
	ErrorPrefix string

	// Validation holds the rules applied to present variables. Nil disables validation.
	Validation *RuleSet
}

// Option configures a Checker.
type Option func(*Checker)

// WithStore sets the variable store. Default: the process environment.
func WithStore(store Store) Option {
	return func(c *Checker) {
		if store != nil {
			c.store = store
		}
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithOutput sets where PrintSummary writes. Default: os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		if w != nil {
			c.out = w
		}
	}
}

// WithErrorOutput sets where strict-mode messages are written. Default: os.Stderr.
func WithErrorOutput(w io.Writer) Option {
	return func(c *Checker) {
		if w != nil {
			c.errOut = w
		}
	}
}

// WithFatalHandler replaces the strict-mode terminator. Default: ExitOnFatal.
// Use PanicOnFatal when the process must not exit.
func WithFatalHandler(fn func(*FatalError)) Option {
	return func(c *Checker) {
		if fn != nil {
			c.fatal = fn
		}
	}
}

// WithWorkDir sets the directory relative env file paths resolve against.
// Default: the process working directory.
func WithWorkDir(dir string) Option {
	return func(c *Checker) {
		c.workDir = dir
	}
}

// ExitOnFatal terminates the process with the error's code.
func ExitOnFatal(err *FatalError) {
	os.Exit(err.Code)
}

// PanicOnFatal raises err as a panic.
func PanicOnFatal(err *FatalError) {
	panic(err)
}

// Checker checks environment variables against Options.
// Every call reads the store afresh; nothing is cached between calls.
type Checker struct {
	opts    Options
	engine  *Engine
	store   Store
	logger  *zap.Logger
	out     io.Writer
	errOut  io.Writer
	fatal   func(*FatalError)
	workDir string
	prov    *Provenance
}

// New creates a Checker and, unless disabled, loads the configured env file into the store.
// Variables already set in the store are never overwritten by the file.
func New(opts Options, options ...Option) (*Checker, error) {
	if opts.EnvFile == "" {
		opts.EnvFile = DefaultEnvFile
	}
	if opts.ErrorPrefix == "" {
		opts.ErrorPrefix = DefaultErrorPrefix
	}
	if !opts.LoadEnvFile.Set {
		opts.LoadEnvFile = Some(true)
	}
	if opts.OptionalVars == nil {
		opts.OptionalVars = []string{}
	}

	c := &Checker{
		opts:   opts,
		store:  processEnv{},
		logger: zap.NewNop(),
		out:    os.Stdout,
		errOut: os.Stderr,
		fatal:  ExitOnFatal,
		prov:   &Provenance{},
	}
	for _, opt := range options {
		opt(c)
	}

	if opts.Validation != nil {
		c.engine = NewEngine(*opts.Validation, WithEngineLogger(c.logger))
	}

	if opts.LoadEnvFile.Value {
		if err := c.loadEnvFile(); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// loadEnvFile resolves the configured env file and merges it into the store.
func (c *Checker) loadEnvFile() error {
	dir := c.workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		dir = wd
	}

	path := ResolveEnvFile(dir, c.opts.EnvFile)
	loaded, err := LoadEnvFile(c.store, path)
	if err != nil {
		return err
	}
	if loaded == nil {
		c.logger.Debug("env file not found", zap.String("path", path))
		return nil
	}

	for _, key := range loaded {
		c.prov.add(key, fileSource(path))
	}
	c.logger.Info("env file loaded",
		zap.String("path", path),
		zap.Int("loaded", len(loaded)),
	)
	return nil
}

// Options returns the effective options, defaults applied.
func (c *Checker) Options() Options {
	return c.opts
}

// Engine returns the rule engine, or nil when no validation is configured.
func (c *Checker) Engine() *Engine {
	return c.engine
}

// Provenance returns the variables injected from the env file.
func (c *Checker) Provenance() *Provenance {
	return c.prov
}

// SourceOf reports where the current value of name came from:
// "file:<name>" when loaded from an env file, "env" when otherwise set, "" when unset.
func (c *Checker) SourceOf(name string) string {
	if src := c.prov.SourceOf(name); src != "" {
		return src
	}
	if _, ok := c.lookup(name); ok {
		return SourceEnv
	}
	return ""
}

// Check reports presence and validation results for every configured variable.
// In strict mode an invalid result is handed to the fatal handler before returning.
func (c *Checker) Check() *Result {
	res := &Result{
		Valid:               true,
		MissingVars:         make([]string, 0),
		PresentVars:         make([]string, 0),
		OptionalPresentVars: make([]string, 0),
		OptionalMissingVars: make([]string, 0),
		Errors:              make([]string, 0),
		ValidationErrors:    make([]string, 0),
		Issues:              make([]Issue, 0),
		TransformedVars:     make(map[string]any),
	}

	// Step 1: Required variables
	for _, name := range c.opts.RequiredVars {
		value, ok := c.lookup(name)
		if !ok {
			msg := fmt.Sprintf("%s Missing required variable: %s", c.opts.ErrorPrefix, name)
			res.MissingVars = append(res.MissingVars, name)
			res.Errors = append(res.Errors, msg)
			res.Issues = append(res.Issues, Issue{Name: name, Code: ErrCodeRequired, Message: msg})
			res.Valid = false
			continue
		}
		res.PresentVars = append(res.PresentVars, name)
		c.evaluate(res, name, value)
	}

	// Step 2: Optional variables
	for _, name := range c.opts.OptionalVars {
		value, ok := c.lookup(name)
		if !ok {
			res.OptionalMissingVars = append(res.OptionalMissingVars, name)
			continue
		}
		res.OptionalPresentVars = append(res.OptionalPresentVars, name)
		c.evaluate(res, name, value)
	}

	c.logger.Debug("environment checked",
		zap.Bool("valid", res.Valid),
		zap.Int("present", len(res.PresentVars)),
		zap.Int("missing", len(res.MissingVars)),
		zap.Int("validation_errors", len(res.ValidationErrors)),
	)

	// Step 3: Strict mode
	if c.opts.Strict && !res.Valid {
		messages := make([]string, 0, len(res.Errors)+len(res.ValidationErrors))
		messages = append(messages, res.Errors...)
		messages = append(messages, res.ValidationErrors...)
		c.fail(messages...)
	}

	return res
}

// evaluate runs the engine for a present variable and records its value.
func (c *Checker) evaluate(res *Result, name, value string) {
	if c.engine == nil {
		res.TransformedVars[name] = value
		return
	}

	out := c.engine.Validate(name, value)
	if len(out.Errors) > 0 {
		res.ValidationErrors = append(res.ValidationErrors, out.Errors...)
		res.Issues = append(res.Issues, out.Issues...)
		res.Valid = false
	}
	res.TransformedVars[name] = out.Value
}

// GetVar returns the value of name. When it is missing or empty the first default
// is returned; without a default, strict mode fails and otherwise the result is unset.
func (c *Checker) GetVar(name string, def ...string) Optional[string] {
	if value, ok := c.lookup(name); ok {
		return Some(value)
	}
	if len(def) > 0 {
		return Some(def[0])
	}
	c.missing(name)
	return Optional[string]{}
}

// GetNumber returns name coerced to a number. A missing or non-numeric value fails
// in strict mode, even when a default is given, and otherwise yields the default.
func (c *Checker) GetNumber(name string, def ...float64) Optional[float64] {
	fallback := firstOf(def)

	value, ok := c.lookup(name)
	if !ok {
		c.missing(name)
		return fallback
	}

	n, ok := parseNumber(value)
	if !ok {
		c.invalid(fmt.Sprintf("%s Variable %s is not a valid number: %s", c.opts.ErrorPrefix, name, value))
		return fallback
	}
	return Some(n)
}

// GetBoolean returns name as a bool. Only true/1/yes/on and false/0/no/off are
// recognized (case-insensitive). A missing or unrecognized value fails in strict
// mode, even when a default is given, and otherwise yields the default.
func (c *Checker) GetBoolean(name string, def ...bool) Optional[bool] {
	fallback := firstOf(def)

	value, ok := c.lookup(name)
	if !ok {
		c.missing(name)
		return fallback
	}

	b, ok := parseBool(value)
	if !ok {
		c.invalid(fmt.Sprintf("%s Variable %s is not a valid boolean: %s", c.opts.ErrorPrefix, name, value))
		return fallback
	}
	return Some(b)
}

// GetTransformedVar runs a full Check and returns the transformed value of name.
func (c *Checker) GetTransformedVar(name string) (any, bool) {
	v, ok := c.Check().TransformedVars[name]
	return v, ok
}

// GetAllTransformedVars runs a full Check and returns every transformed value.
func (c *Checker) GetAllTransformedVars() map[string]any {
	return c.Check().TransformedVars
}

// ValidateVar validates value against the rules for name without any presence check.
// Without validation rules the outcome is always valid.
func (c *Checker) ValidateVar(name, value string) Outcome {
	if c.engine == nil {
		return Outcome{Valid: true, Errors: make([]string, 0), Issues: make([]Issue, 0), Value: value}
	}
	return c.engine.Validate(name, value)
}

// PrintSummary runs a Check and writes a summary to the output writer.
func (c *Checker) PrintSummary() error {
	return WriteSummary(c.out, c.opts.ErrorPrefix, c.Check())
}

// lookup treats unset and empty values alike.
func (c *Checker) lookup(name string) (string, bool) {
	value, ok := c.store.Lookup(name)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

func (c *Checker) missing(name string) {
	c.invalid(fmt.Sprintf("%s Missing variable: %s", c.opts.ErrorPrefix, name))
}

func (c *Checker) invalid(msg string) {
	if !c.opts.Strict {
		c.logger.Debug("ignoring invalid variable", zap.String("reason", msg))
		return
	}
	c.fail(msg)
}

// fail writes messages to the error output and hands them to the fatal handler.
func (c *Checker) fail(messages ...string) {
	fe := &FatalError{Code: 1, Messages: messages}
	fmt.Fprintln(c.errOut, strings.Join(messages, "\n"))
	c.logger.Error("strict environment check failed", zap.Strings("errors", messages))
	c.fatal(fe)
}

func firstOf[T any](values []T) Optional[T] {
	if len(values) == 0 {
		return Optional[T]{}
	}
	return Some(values[0])
}

// CheckEnv creates a Checker for opts and runs Check once.
func CheckEnv(opts Options, options ...Option) (*Result, error) {
	c, err := New(opts, options...)
	if err != nil {
		return nil, err
	}
	return c.Check(), nil
}

// CheckEnvStrict is CheckEnv with strict mode forced on.
func CheckEnvStrict(opts Options, options ...Option) (*Result, error) {
	opts.Strict = true
	return CheckEnv(opts, options...)
}

// GetEnvVar creates a non-strict Checker with no required variables and returns GetVar(name).
// An unset def means no default.
func GetEnvVar(name string, def Optional[string], options ...Option) (Optional[string], error) {
	c, err := New(Options{LoadEnvFile: Some(true)}, options...)
	if err != nil {
		return Optional[string]{}, err
	}
	return c.GetVar(name, defaults(def)...), nil
}

// GetEnvNumber is GetEnvVar for GetNumber.
func GetEnvNumber(name string, def Optional[float64], options ...Option) (Optional[float64], error) {
	c, err := New(Options{LoadEnvFile: Some(true)}, options...)
	if err != nil {
		return Optional[float64]{}, err
	}
	return c.GetNumber(name, defaults(def)...), nil
}

// GetEnvBoolean is GetEnvVar for GetBoolean.
func GetEnvBoolean(name string, def Optional[bool], options ...Option) (Optional[bool], error) {
	c, err := New(Options{LoadEnvFile: Some(true)}, options...)
	if err != nil {
		return Optional[bool]{}, err
	}
	return c.GetBoolean(name, defaults(def)...), nil
}

func defaults[T any](def Optional[T]) []T {
	if v, ok := def.Get(); ok {
		return []T{v}
	}
	return nil
}
