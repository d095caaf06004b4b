package sourcefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/internal/celrule"
	"github.com/Azhovan/envcheck/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures file loading behavior.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false (returns empty options).
	Required bool
}

// fileConfig mirrors the file schema.
type fileConfig struct {
	EnvFile     string            `yaml:"envFile" json:"envFile" toml:"envFile"`
	Required    []string          `yaml:"required" json:"required" toml:"required"`
	Optional    []string          `yaml:"optional" json:"optional" toml:"optional"`
	LoadEnvFile *bool             `yaml:"loadEnvFile" json:"loadEnvFile" toml:"loadEnvFile"`
	Strict      bool              `yaml:"strict" json:"strict" toml:"strict"`
	ErrorPrefix string            `yaml:"errorPrefix" json:"errorPrefix" toml:"errorPrefix"`
	Validation  *validationConfig `yaml:"validation" json:"validation" toml:"validation"`
}

type validationConfig struct {
	Regex       map[string]string      `yaml:"regex" json:"regex" toml:"regex"`
	Format      map[string]string      `yaml:"format" json:"format" toml:"format"`
	Custom      map[string]string      `yaml:"custom" json:"custom" toml:"custom"`
	NumberRange map[string]rangeConfig `yaml:"numberRange" json:"numberRange" toml:"numberRange"`
	Transform   map[string]string      `yaml:"transform" json:"transform" toml:"transform"`
}

// rangeConfig bounds are decoded loosely; each format has its own numeric types.
type rangeConfig struct {
	Min any `yaml:"min" json:"min" toml:"min"`
	Max any `yaml:"max" json:"max" toml:"max"`
}

// Load reads and parses the file at path into checker options.
func Load(path string, opts Options) (envcheck.Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if opts.Required {
				return envcheck.Options{}, fmt.Errorf("required rules file not found: %s: %w", path, err)
			}
			return envcheck.Options{}, nil
		}
		return envcheck.Options{}, fmt.Errorf("read rules file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}

	var raw fileConfig
	switch format {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return envcheck.Options{}, fmt.Errorf("parse YAML file %s: %w", path, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return envcheck.Options{}, fmt.Errorf("parse JSON file %s: %w", path, err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &raw); err != nil {
			return envcheck.Options{}, fmt.Errorf("parse TOML file %s: %w", path, err)
		}
	default:
		return envcheck.Options{}, fmt.Errorf("unsupported file format: %s (supported: yaml, json, toml)", format)
	}

	result, err := raw.toOptions()
	if err != nil {
		return envcheck.Options{}, fmt.Errorf("rules file %s: %w", path, err)
	}
	return result, nil
}

// toOptions converts the decoded file into checker options, compiling every rule.
func (c fileConfig) toOptions() (envcheck.Options, error) {
	opts := envcheck.Options{
		EnvFile:      c.EnvFile,
		RequiredVars: normalize.Dedupe(trimAll(c.Required)),
		OptionalVars: normalize.Dedupe(trimAll(c.Optional)),
		Strict:       c.Strict,
		ErrorPrefix:  c.ErrorPrefix,
	}
	if c.LoadEnvFile != nil {
		opts.LoadEnvFile = envcheck.Some(*c.LoadEnvFile)
	}
	if c.Validation == nil {
		return opts, nil
	}

	rules, err := c.Validation.toRuleSet()
	if err != nil {
		return envcheck.Options{}, err
	}
	opts.Validation = &rules
	return opts, nil
}

func (v validationConfig) toRuleSet() (envcheck.RuleSet, error) {
	rules := envcheck.NewRuleSet(envcheck.RuleSet{})

	for _, name := range sortedKeys(v.Regex) {
		re, err := regexp.Compile(v.Regex[name])
		if err != nil {
			return rules, fmt.Errorf("regex for %s: %w", name, err)
		}
		rules.Regex[name] = re
	}

	for _, name := range sortedKeys(v.Format) {
		f, err := envcheck.ParseFormat(v.Format[name])
		if err != nil {
			return rules, fmt.Errorf("format for %s: %w", name, err)
		}
		rules.Format[name] = f
	}

	for _, name := range sortedKeys(v.Custom) {
		pred, err := celrule.Compile(v.Custom[name])
		if err != nil {
			return rules, fmt.Errorf("custom rule for %s: %w", name, err)
		}
		rules.Custom[name] = pred
	}

	for _, name := range sortedKeys(v.NumberRange) {
		r, err := v.NumberRange[name].toRange()
		if err != nil {
			return rules, fmt.Errorf("numberRange for %s: %w", name, err)
		}
		rules.NumberRange[name] = r
	}

	for _, name := range sortedKeys(v.Transform) {
		fn, err := envcheck.Transformer(v.Transform[name])
		if err != nil {
			return rules, fmt.Errorf("transform for %s: %w", name, err)
		}
		rules.Transform[name] = fn
	}

	return rules, nil
}

func (r rangeConfig) toRange() (envcheck.Range, error) {
	var out envcheck.Range
	if r.Min != nil {
		n, err := toFloat(r.Min)
		if err != nil {
			return out, fmt.Errorf("min: %w", err)
		}
		out.Min = envcheck.Some(n)
	}
	if r.Max != nil {
		n, err := toFloat(r.Max)
		if err != nil {
			return out, fmt.Errorf("max: %w", err)
		}
		out.Max = envcheck.Some(n)
	}
	return out, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}

func trimAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name = strings.TrimSpace(name); name != "" {
			out = append(out, name)
		}
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
