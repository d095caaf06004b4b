package cmd

import (
	"errors"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/sourceenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrFailed reports a failed check or validation whose details were already printed.
var ErrFailed = errors.New("envcheck: validation failed")

// app carries the state shared by every subcommand.
type app struct {
	cfg    *Config
	store  envcheck.Store
	logger *zap.Logger
}

// NewRootCommand assembles the envcheck command tree.
// A nil store reads and writes the process environment.
func NewRootCommand(cfg *Config, store envcheck.Store) *cobra.Command {
	if store == nil {
		store = sourceenv.New(sourceenv.Options{})
	}
	a := &app{cfg: cfg, store: store, logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "envcheck",
		Short: "Validate environment variables",
		Long: `envcheck checks that the environment variables an application needs
are present and well formed.

Commands:
  check     - check required and optional variables
  validate  - validate a single value against a rule
  detect    - list the env files present in a directory
  example   - print an example configuration`,
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := a.cfg.NewLogger()
			if err != nil {
				return err
			}
			a.logger = logger
			return nil
		},
	}

	rootCmd.AddCommand(
		newCheckCmd(a),
		newValidateCmd(a),
		newDetectCmd(),
		newExampleCmd(),
	)
	return rootCmd
}

// Execute runs the command tree against the process environment.
func Execute() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return NewRootCommand(cfg, nil).Execute()
}
