package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootFlags struct {
	verbose bool
}

var rootCmd = &cobra.Command{
	Use:          "mindctl",
	Short:        "Cognitive adaptation engine tooling: simulate, inspect, and replay player profiles",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(simulateCmd, inspectCmd, replayCmd)
}

// newLogger builds the process logger honoring --verbose.
func newLogger() (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if rootFlags.verbose {
		config = zap.NewDevelopmentConfig()
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
