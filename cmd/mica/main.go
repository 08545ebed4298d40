package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mica/internal/version"
)

// errChecksFailed signals that diagnostics were rendered and at least one
// was an error. Distinguishes "your code is broken" (exit 1) from "the
// tool failed" (exit 2).
var errChecksFailed = errors.New("check failed")

var rootCmd = &cobra.Command{
	Use:           "mica",
	Short:         "Mica language front end",
	Long:          "Mica analyzes *.mc source files and reports semantic diagnostics",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errChecksFailed) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "mica:", err)
		os.Exit(2)
	}
}
