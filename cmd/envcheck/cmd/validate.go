package cmd

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Azhovan/envcheck"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type validateFlags struct {
	format    string
	regex     string
	transform string
}

func newValidateCmd(a *app) *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate <name> <value>",
		Short: "Validate a single value",
		Long: `Validate a value as if it were the named variable.

Formats: ` + formatNames() + `
Transforms: lowerCase, upperCase, trim, toNumber, toBoolean, toArray, toObject`,
		Example: `  envcheck validate PORT 8080 --format port --transform toNumber
  envcheck validate API_KEY sk_live_123 --regex '^sk_'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, a, flags, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "", "predefined format")
	cmd.Flags().StringVarP(&flags.regex, "regex", "r", "", "regular expression the value must match")
	cmd.Flags().StringVarP(&flags.transform, "transform", "t", "", "transform applied to a valid value")

	return cmd
}

func runValidate(cmd *cobra.Command, a *app, flags *validateFlags, name, value string) error {
	rules := envcheck.NewRuleSet(envcheck.RuleSet{})

	if flags.format != "" {
		f, err := envcheck.ParseFormat(flags.format)
		if err != nil {
			return err
		}
		rules.Format[name] = f
	}
	if flags.regex != "" {
		re, err := regexp.Compile(flags.regex)
		if err != nil {
			return fmt.Errorf("invalid regex %q: %w", flags.regex, err)
		}
		rules.Regex[name] = re
	}
	if flags.transform != "" {
		fn, err := envcheck.Transformer(flags.transform)
		if err != nil {
			return err
		}
		rules.Transform[name] = fn
	}

	out := envcheck.NewEngine(rules, envcheck.WithEngineLogger(a.logger)).Validate(name, value)
	a.logger.Debug("value validated", zap.String("name", name), zap.Bool("valid", out.Valid))

	if !out.Valid {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Variable is invalid")
		fmt.Fprintf(errOut, "Errors:\n%s\n", strings.Join(out.Errors, "\n"))
		return ErrFailed
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Variable is valid")
	fmt.Fprintf(w, "Original value: %s\n", value)
	if s, ok := out.Value.(string); !ok || s != value {
		fmt.Fprintf(w, "Transformed value: %s\n", render(out.Value))
	}
	return nil
}

// render prints strings verbatim and everything else as JSON.
func render(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func formatNames() string {
	names := make([]string, 0, len(envcheck.Formats()))
	for _, f := range envcheck.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
