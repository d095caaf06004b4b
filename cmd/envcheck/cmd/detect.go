package cmd

import (
	"fmt"

	"github.com/Azhovan/envcheck"
	"github.com/spf13/cobra"
)

func newDetectCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "List the env files present in a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			found := envcheck.DetectEnvFiles(dir)
			if len(found) == 0 {
				fmt.Fprintln(w, "No env files found")
				return nil
			}

			fmt.Fprintln(w, "Detected env files:")
			for _, name := range found {
				fmt.Fprintf(w, "  - %s\n", name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory to search")
	return cmd
}
