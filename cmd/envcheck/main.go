package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Azhovan/envcheck/cmd/envcheck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
