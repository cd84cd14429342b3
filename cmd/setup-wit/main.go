package main

import (
	"fmt"
	"os"

	"github.com/turbofive/wit/internal/witcli"
)

// Set via -ldflags at build time.
var version = "dev"

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		// A failing external tool decides the job's exit code.
		os.Exit(witcli.ExitCode(err))
	}
}
