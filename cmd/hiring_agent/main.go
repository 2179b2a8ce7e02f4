// Package main provides the hiring-agent CLI: score resumes from the
// command line or serve the scoring pipeline over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "hiring_agent",
	Short: "Resume screening and scoring pipeline",
	Long:  "hiring_agent extracts structured candidate records from resumes, enriches them with public GitHub evidence, and scores them against a fixed rubric.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
