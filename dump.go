package envcheck

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// RedactedValue replaces the value of redacted variables in dumps.
const RedactedValue = "***redacted***"

// DumpOption configures dump behavior using the functional options pattern.
type DumpOption func(*dumpConfig)

// dumpConfig holds options for DumpResult.
type dumpConfig struct {
	sources *Provenance     // Source attribution, nil to omit
	asJSON  bool            // Output as JSON instead of text format
	indent  string          // Indentation for JSON output (default: "  ")
	redact  map[string]bool // Variables whose value is hidden
}

// WithSources attributes each variable to the source recorded in prov.
// Variables without a record are attributed to the environment.
func WithSources(prov *Provenance) DumpOption {
	return func(cfg *dumpConfig) {
		if prov == nil {
			prov = &Provenance{}
		}
		cfg.sources = prov
	}
}

// AsJSON outputs transformed values as JSON instead of text format.
func AsJSON() DumpOption {
	return func(cfg *dumpConfig) {
		cfg.asJSON = true
	}
}

// WithIndent sets the indentation for JSON output.
// Default is two spaces ("  ").
func WithIndent(indent string) DumpOption {
	return func(cfg *dumpConfig) {
		cfg.indent = indent
	}
}

// WithRedact hides the values of the named variables.
func WithRedact(names ...string) DumpOption {
	return func(cfg *dumpConfig) {
		for _, name := range names {
			cfg.redact[name] = true
		}
	}
}

// WriteSummary writes counts of present and missing variables followed by any validation errors.
func WriteSummary(w io.Writer, prefix string, res *Result) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}

	required := len(res.PresentVars) + len(res.MissingVars)
	optional := len(res.OptionalPresentVars) + len(res.OptionalMissingVars)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Environment variables summary:\n", prefix)
	fmt.Fprintf(&b, "  Required variables present: %d/%d\n", len(res.PresentVars), required)
	fmt.Fprintf(&b, "  Optional variables present: %d/%d\n", len(res.OptionalPresentVars), optional)

	if len(res.MissingVars) > 0 {
		fmt.Fprintf(&b, "  Missing variables: %s\n", strings.Join(res.MissingVars, ", "))
	}
	if len(res.OptionalMissingVars) > 0 {
		fmt.Fprintf(&b, "  Missing optional variables: %s\n", strings.Join(res.OptionalMissingVars, ", "))
	}
	if len(res.ValidationErrors) > 0 {
		b.WriteString("  Validation errors:\n")
		for _, msg := range res.ValidationErrors {
			fmt.Fprintf(&b, "    - %s\n", msg)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return nil
}

// DumpResult writes the transformed values of res, sorted by name.
// Returns an error if writing to the writer fails.
func DumpResult(w io.Writer, res *Result, opts ...DumpOption) error {
	if res == nil {
		return fmt.Errorf("result is nil")
	}

	config := dumpConfig{
		indent: "  ",
		redact: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(&config)
	}

	names := make([]string, 0, len(res.TransformedVars))
	for name := range res.TransformedVars {
		names = append(names, name)
	}
	sort.Strings(names)

	if config.asJSON {
		return dumpAsJSON(w, res, names, config)
	}
	return dumpAsText(w, res, names, config)
}

// dumpAsText outputs values in text format (NAME: value).
func dumpAsText(w io.Writer, res *Result, names []string, config dumpConfig) error {
	for _, name := range names {
		line := fmt.Sprintf("%s: %s", name, displayValue(name, res.TransformedVars[name], config))
		if config.sources != nil {
			line += fmt.Sprintf(" (source: %s)", sourceLabel(config.sources, name))
		}
		line += "\n"

		if _, err := w.Write([]byte(line)); err != nil {
			return fmt.Errorf("write error: %w", err)
		}
	}
	return nil
}

// dumpAsJSON outputs values as a JSON object keyed by variable name.
func dumpAsJSON(w io.Writer, res *Result, names []string, config dumpConfig) error {
	result := make(map[string]any, len(names))
	for _, name := range names {
		var value any = RedactedValue
		if !config.redact[name] {
			value = jsonSafe(res.TransformedVars[name])
		}

		if config.sources != nil {
			result[name] = map[string]any{
				"value":  value,
				"source": sourceLabel(config.sources, name),
			}
			continue
		}
		result[name] = value
	}

	var data []byte
	var err error
	if config.indent != "" {
		data, err = json.MarshalIndent(result, "", config.indent)
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("json marshal error: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	// Add newline for better formatting
	if _, err := w.Write([]byte("\n")); err != nil {
		return fmt.Errorf("write error: %w", err)
	}

	return nil
}

func displayValue(name string, value any, config dumpConfig) string {
	if config.redact[name] {
		return RedactedValue
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return formatNumber(v)
	case nil:
		return "<nil>"
	}
	if data, err := json.Marshal(value); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", value)
}

// jsonSafe replaces floats JSON cannot encode (NaN, ±Inf) with their text form.
func jsonSafe(value any) any {
	if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return formatNumber(f)
	}
	return value
}

func sourceLabel(prov *Provenance, name string) string {
	if src := prov.SourceOf(name); src != "" {
		return src
	}
	return SourceEnv
}
