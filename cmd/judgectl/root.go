package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/judgeboard/internal/config"
	"github.com/okian/judgeboard/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "judgectl",
	Short: "Operator tools for a judgeboard event",
	Long: `judgectl reads a judgeboard data file or drives a running server.

Configuration is shared with the server: defaults, then the YAML file named by
JUDGEBOARD_CONFIG, then JUDGEBOARD_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		c, err := config.Load(cmd.Context())
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithOutput(os.Stderr)); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return logger.SetLevelString(cfg.LogLevel)
	},
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = logger.Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
