package cmd

import (
	"context"
	"log/slog"

	"github.com/gaze-network/dutch-auction/internal/config"
	"github.com/gaze-network/dutch-auction/pkg/logger"
	"github.com/gaze-network/dutch-auction/pkg/logger/slogx"
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:  "auction",
	Long: `Dutch auction service for Counterparty assets attached to Bitcoin UTXOs`,
}

func init() {
	var configFile string

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "config file, E.g.  `./config.yaml`")
	flags.String("network", "mainnet", "network to connect to, E.g. `mainnet`, `testnet` or `regtest`")

	// Bind flags to configuration
	config.BindPFlag("network", flags.Lookup("network"))

	// Initialize configuration and logger on start command
	cobra.OnInitialize(func() {
		// Initialize configuration
		config := config.Parse(configFile)

		// Initialize logger
		if err := logger.Init(config.Logger); err != nil {
			logger.Panic("Failed to initialize logger", slogx.Error(err), slog.Any("config", config.Logger))
		}
	})
}

func Execute(ctx context.Context) {
	// Register sub-commands
	cmd.AddCommand(
		NewVersionCommand(),
		NewRunCommand(),
		NewMigrateCommand(),
		NewDebugUTXOCommand(),
	)

	// Execute command
	if err := cmd.ExecuteContext(ctx); err != nil {
		logger.Panic("Failed to execute root command", slogx.Error(err))
	}
}
