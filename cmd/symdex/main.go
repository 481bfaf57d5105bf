package main

import (
	"fmt"
	"os"

	"github.com/symdex-dev/symdex/internal/cli"
)

// version is set at build time via -ldflags.
var version = "0.1.0-dev"

func main() {
	rootCmd := cli.NewRootCommand(version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
