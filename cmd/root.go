package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/shell-assess/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "shell-assess",
	Short: "Customer-to-shell relationship assessment",
	Long:  "Computes relationship flags for Salesforce customer accounts against their shell (parent) records: bad-domain gating, shell linkage, name and website consistency scoring, and address agreement.",
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
