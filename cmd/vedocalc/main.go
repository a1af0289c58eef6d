// VedoCalc groups ordered items into manufacturing cutoffs and writes the
// result as a spreadsheet, with optional PDF report and label sheets.
//
// Build:
//
//	go build -o vedocalc ./cmd/vedocalc
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/VedoCalc/internal/model"
	"github.com/piwi3910/VedoCalc/internal/project"
)

var (
	// Global flags
	verbose    bool
	configPath string
	envFile    string

	// Effective configuration, loaded before every command
	appConfig model.AppConfig

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vedocalc",
	Short: "VedoCalc - cutoff calculator for formed items",
	Long: `VedoCalc reads an order (a .txt list of item identifiers, an .xlsx or .csv
table, or the text annotations of a .dxf drawing), groups the items into
cutoffs that fit the capacity of their form, and writes the result table.

Item identifiers look like name_WIDTHxLENGTHxPROJECTION_FORMTYPE, with
dimensions in millimeters, for example tray_500x300x50_1.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg

		logger, err = buildLogger(cfg.LogLevel, verbose)
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

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", project.DefaultConfigPath(), "Path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to a .env file with overrides")

	rootCmd.AddCommand(processCmd, parseCmd, configCmd)
}

// loadConfig reads the config file and applies environment overrides.
func loadConfig() (model.AppConfig, error) {
	cfg, err := project.LoadAppConfig(configPath)
	if err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return project.ApplyEnv(cfg, envFile)
}

// buildLogger creates the production logger at the configured level.
// Verbose always switches to debug.
func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if level != "" {
		lvl, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		config.Level = zap.NewAtomicLevelAt(lvl)
	}
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
