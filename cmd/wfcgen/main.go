package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
	version = "dev" // set by build flags
)

var rootCmd = &cobra.Command{
	Use:     "wfcgen",
	Short:   "Grid constraint-collapse generator",
	Long:    `wfcgen fills a rectangular grid from a module catalog under adjacency constraints, backtracking on contradiction and optionally rejection-sampling the result against a closed set of validators.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		zerolog.SetGlobalLevel(level)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose (debug-level) logging")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(watchCmd)
}

// Commands are defined in separate files:
// - generateCmd in generate.go
// - validateCmd in validate.go
// - watchCmd in watch.go

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
