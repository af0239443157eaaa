package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/catastro-latam/catastro-api/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "catastro-api",
	Short: "Cadastral lookup service for Colombian addresses",
	Long:  "Geocodes free-text addresses, matches them against the cadastral dataset, and serves parcel details, stratum, estimated value and nearby points of interest.",
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
