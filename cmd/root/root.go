// Package root contains the root command for the application
package root

import (
	"fmt"

	"fjacquet/sheet-ledger/internal/config"
	"fjacquet/sheet-ledger/internal/container"
	"fjacquet/sheet-ledger/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	ConfigFile string
	LogLevel   string
	View       string
	Month      int
}

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Config is the configuration loaded before any subcommand runs
	Config *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "sheet-ledger",
		Short: "A CLI tool to read a cash register kept in a Google Sheet.",
		Long: `sheet-ledger reads income and expense rows from a Google Sheet,
either through its public CSV export or the Sheets API, and shows totals
and filtered views of the transactions.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to sheet-ledger!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup()
		},
		SilenceUsage: true,
	}

	// Common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ConfigFile, "config", "c", "", "Config file (default: config.yaml in $HOME/.sheet-ledger, .sheet-ledger or .)")
	Cmd.PersistentFlags().StringVar(&SharedFlags.LogLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
}

// AddViewFlags registers the --view and --month flags on a subcommand.
func AddViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&SharedFlags.View, "view", "all", "Transactions to list: all, income or expense")
	cmd.Flags().IntVarP(&SharedFlags.Month, "month", "m", 0, "Only list transactions of this month (1-12, any year)")
}

// Setup loads .env and the configuration and configures Log.
func Setup() error {
	config.LoadEnv()

	var (
		cfg *config.Config
		err error
	)
	if SharedFlags.ConfigFile != "" {
		cfg, err = config.InitializeConfigFromFile(SharedFlags.ConfigFile)
	} else {
		cfg, err = config.InitializeConfig()
	}
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	Config = cfg
	Log = config.ConfigureLoggingFromConfig(cfg)
	return nil
}

// NewContainer wires the application from Config, logging through Log.
func NewContainer() (*container.Container, error) {
	if Config == nil {
		if err := Setup(); err != nil {
			return nil, err
		}
	}
	return container.NewContainerWithLogger(Config, logging.NewLogrusAdapterFromLogger(Log))
}
