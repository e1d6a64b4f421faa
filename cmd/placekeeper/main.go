package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"placekeeper/internal/app"
	"placekeeper/internal/config"
)

var (
	// Global flags
	configPath string
	dataDir    string
	verbose    bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "placekeeper",
	Short: "placekeeper - local place journal with an authenticated session",
	Long: `placekeeper records places (title, photo reference, geolocation) in a
durable on-device SQLite store behind an authenticated session.

The session token is persisted across launches; every command runs the
one-time startup sequence (store schema init + session restore) before
touching any data.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// launch loads config, wires the app, and runs the startup sequence. The
// gate always releases; a degraded store is reported but the command
// still gets a usable app for non-place features.
func launch(cmd *cobra.Command) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.Storage.DataDir = dataDir
	}

	a := app.New(cfg, logger)
	result := a.Start(cmd.Context())
	if result.StoreErr != nil {
		fmt.Fprintf(os.Stderr, "warning: places unavailable: %v\n", result.StoreErr)
	}
	if result.RestoreErr != nil {
		fmt.Fprintf(os.Stderr, "warning: session restore failed, continuing logged out\n")
	}
	return a, nil
}

func main() {
	cobra.EnableCommandSorting = false
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "placekeeper.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "override data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
