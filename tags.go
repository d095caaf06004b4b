package envcheck

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/Azhovan/envcheck/internal/celrule"
	"github.com/Azhovan/envcheck/internal/normalize"
)

// tagConfig holds parsed directives from a struct field's `check` tag.
type tagConfig struct {
	required  bool   // Variable is required (required or required:true)
	format    string // Predefined format (format:url)
	min       string // Minimum numeric value (min:N)
	max       string // Maximum numeric value (max:M)
	transform string // Built-in transformer name (transform:toNumber)
}

// parseTag parses a `check` struct tag.
// Tag format: "directive1:value1,directive2:value2,..."
// Boolean directives can omit `:true` (e.g., "required" == "required:true")
func parseTag(tag string) tagConfig {
	cfg := tagConfig{}

	for _, directive := range strings.Split(tag, ",") {
		directive = strings.TrimSpace(directive)
		if directive == "" {
			continue
		}

		parts := strings.SplitN(directive, ":", 2)
		name := strings.TrimSpace(parts[0])
		var value string
		if len(parts) > 1 {
			value = strings.TrimSpace(parts[1])
		}

		switch name {
		case "required":
			cfg.required = value != "false"
		case "optional":
			cfg.required = value == "false"
		case "format":
			cfg.format = value
		case "min":
			cfg.min = value
		case "max":
			cfg.max = value
		case "transform":
			cfg.transform = value
		}
	}

	return cfg
}

// OptionsFromStruct derives Options from the tags of a struct type.
// v must be a struct or a pointer to one; only its type is inspected.
//
// Recognized tags:
//
//	env:"NAME"                variable name (default: field name in SCREAMING_SNAKE_CASE)
//	check:"required,format:url,min:1,max:65535,transform:toNumber"
//	regex:"^[a-z]+$"          regex rule
//	cel:"int(value) % 2 == 0" custom predicate as a CEL expression
//	envPrefix:"DB_"           prefix for the fields of a nested struct
//
// Every exported field becomes a variable; fields without "required" are optional.
func OptionsFromStruct(v any) (Options, error) {
	t := reflect.TypeOf(v)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return Options{}, fmt.Errorf("envcheck: OptionsFromStruct needs a struct, got %T", v)
	}

	opts := Options{
		RequiredVars: make([]string, 0),
		OptionalVars: make([]string, 0),
	}
	rules := NewRuleSet(RuleSet{})
	if err := collectStruct(t, "", &opts, &rules); err != nil {
		return Options{}, err
	}

	opts.RequiredVars = normalize.Dedupe(opts.RequiredVars)
	opts.OptionalVars = normalize.Dedupe(opts.OptionalVars)
	if hasRules(rules) {
		opts.Validation = &rules
	}
	return opts, nil
}

// collectStruct walks the fields of t, recursing into nested structs.
func collectStruct(t reflect.Type, prefix string, opts *Options, rules *RuleSet) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		fieldType := field.Type
		if fieldType.Kind() == reflect.Ptr {
			fieldType = fieldType.Elem()
		}

		// Nested structs contribute their own fields
		if fieldType.Kind() == reflect.Struct && fieldType.PkgPath() != "time" {
			nested := normalize.ApplyPrefix(prefix, field.Tag.Get("envPrefix"))
			if err := collectStruct(fieldType, nested, opts, rules); err != nil {
				return err
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			name = normalize.ToEnvName(field.Name)
		}
		name = normalize.ApplyPrefix(prefix, name)

		if err := collectField(field, name, opts, rules); err != nil {
			return fmt.Errorf("field %s: %w", field.Name, err)
		}
	}
	return nil
}

// collectField records the presence requirement and rules of one field.
func collectField(field reflect.StructField, name string, opts *Options, rules *RuleSet) error {
	tags := parseTag(field.Tag.Get("check"))

	if tags.required {
		opts.RequiredVars = append(opts.RequiredVars, name)
	} else {
		opts.OptionalVars = append(opts.OptionalVars, name)
	}

	if tags.format != "" {
		f, err := ParseFormat(tags.format)
		if err != nil {
			return err
		}
		rules.Format[name] = f
	}

	if tags.min != "" || tags.max != "" {
		var r Range
		if tags.min != "" {
			n, err := strconv.ParseFloat(tags.min, 64)
			if err != nil {
				return fmt.Errorf("invalid min %q: %w", tags.min, err)
			}
			r.Min = Some(n)
		}
		if tags.max != "" {
			n, err := strconv.ParseFloat(tags.max, 64)
			if err != nil {
				return fmt.Errorf("invalid max %q: %w", tags.max, err)
			}
			r.Max = Some(n)
		}
		rules.NumberRange[name] = r
	}

	if tags.transform != "" {
		fn, err := Transformer(tags.transform)
		if err != nil {
			return err
		}
		rules.Transform[name] = fn
	}

	if pattern, ok := field.Tag.Lookup("regex"); ok {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("invalid regex %q: %w", pattern, err)
		}
		rules.Regex[name] = re
	}

	if expr, ok := field.Tag.Lookup("cel"); ok {
		pred, err := celrule.Compile(expr)
		if err != nil {
			return err
		}
		rules.Custom[name] = pred
	}

	return nil
}

func hasRules(r RuleSet) bool {
	return len(r.Regex)+len(r.Format)+len(r.Custom)+len(r.NumberRange)+len(r.Transform) > 0
}
