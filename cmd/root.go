package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anviksha/anviksha/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "anviksha",
	Short: "Public procurement spending analysis",
	Long: "Normalizes tender values to base-year rupees using CPI data and surfaces " +
		"statistical observations (price outliers, limited bidding, vendor concentration, " +
		"year-over-year jumps) with neutral, research-grade annotations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
