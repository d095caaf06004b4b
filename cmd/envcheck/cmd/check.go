package cmd

import (
	"fmt"
	"strings"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/internal/normalize"
	"github.com/Azhovan/envcheck/sourcefile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type checkFlags struct {
	file     string
	required string
	optional string
	rules    string
	strict   bool
	verbose  bool
	asJSON   bool
	redact   []string
}

func newCheckCmd(a *app) *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check environment variables",
		Long: `Check that required variables are present and that every present
variable satisfies its validation rules.

Variables are read from the environment after loading the env file.
Rules can be supplied in a YAML, JSON or TOML file with --rules.`,
		Example: `  envcheck check -r DATABASE_URL,PORT -o DEBUG
  envcheck check --rules envcheck.yaml --verbose`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, a, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.file, "file", "f", a.cfg.EnvFile, "env file to load")
	cmd.Flags().StringVarP(&flags.required, "required", "r", "", "required variables (comma separated)")
	cmd.Flags().StringVarP(&flags.optional, "optional", "o", "", "optional variables (comma separated)")
	cmd.Flags().StringVar(&flags.rules, "rules", "", "rules file (yaml, json or toml)")
	cmd.Flags().BoolVarP(&flags.strict, "strict", "s", false, "exit non-zero on any failure")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "print a summary and the checked values")
	cmd.Flags().BoolVar(&flags.asJSON, "json", false, "print checked values as JSON (with --verbose)")
	cmd.Flags().StringSliceVar(&flags.redact, "redact", nil, "variables whose values are hidden in verbose output")

	return cmd
}

func runCheck(cmd *cobra.Command, a *app, flags *checkFlags) error {
	opts, err := checkOptions(cmd, a, flags)
	if err != nil {
		return err
	}

	var fatal *envcheck.FatalError
	checker, err := envcheck.New(opts,
		envcheck.WithStore(a.store),
		envcheck.WithLogger(a.logger),
		envcheck.WithOutput(cmd.OutOrStdout()),
		envcheck.WithErrorOutput(cmd.ErrOrStderr()),
		envcheck.WithFatalHandler(func(fe *envcheck.FatalError) { fatal = fe }),
	)
	if err != nil {
		return err
	}

	res := checker.Check()
	if fatal != nil {
		return ErrFailed
	}

	out := cmd.OutOrStdout()
	if flags.verbose {
		if err := checker.PrintSummary(); err != nil {
			return err
		}
	}

	if !res.Valid {
		errOut := cmd.ErrOrStderr()
		fmt.Fprintln(errOut, "Validation failed")
		if len(res.Errors) > 0 {
			fmt.Fprintf(errOut, "Errors:\n%s\n", strings.Join(res.Errors, "\n"))
		}
		if len(res.ValidationErrors) > 0 {
			fmt.Fprintf(errOut, "Validation errors:\n%s\n", strings.Join(res.ValidationErrors, "\n"))
		}
		return ErrFailed
	}

	fmt.Fprintln(out, "All variables are valid")
	if flags.verbose {
		dumpOpts := []envcheck.DumpOption{
			envcheck.WithSources(checker.Provenance()),
			envcheck.WithRedact(flags.redact...),
		}
		if flags.asJSON {
			dumpOpts = append(dumpOpts, envcheck.AsJSON())
		}
		return envcheck.DumpResult(out, res, dumpOpts...)
	}
	return nil
}

// checkOptions merges the rules file with the command line; flags win.
func checkOptions(cmd *cobra.Command, a *app, flags *checkFlags) (envcheck.Options, error) {
	opts := envcheck.Options{ErrorPrefix: a.cfg.ErrorPrefix}

	if flags.rules != "" {
		loaded, err := sourcefile.Load(flags.rules, sourcefile.Options{Required: true})
		if err != nil {
			return envcheck.Options{}, err
		}
		opts = loaded
		if opts.ErrorPrefix == "" {
			opts.ErrorPrefix = a.cfg.ErrorPrefix
		}
		a.logger.Debug("rules loaded", zap.String("path", flags.rules))
	}

	if opts.EnvFile == "" || cmd.Flags().Changed("file") {
		opts.EnvFile = flags.file
	}
	opts.RequiredVars = normalize.Dedupe(append(opts.RequiredVars, normalize.SplitList(flags.required, ",")...))
	opts.OptionalVars = normalize.Dedupe(append(opts.OptionalVars, normalize.SplitList(flags.optional, ",")...))
	if flags.strict {
		opts.Strict = true
	}

	return opts, nil
}
