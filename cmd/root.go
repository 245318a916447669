package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stefmolin/login-attempt-simulator/internal/config"
	"github.com/stefmolin/login-attempt-simulator/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "loginsim",
	Short: "Synthesize labeled login-attempt logs",
	Long: `loginsim synthesizes a labeled event log of website login attempts,
mixing legitimate-user traffic with credential-guessing campaigns, for use
as training and test data for anomaly-detection models.

Runs are reproducible: the same seed, user base, and configuration always
produce identical logs.`,
	Version: "0.1.0",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./loginsim.yaml, then $HOME/.loginsim/loginsim.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text or json")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: could not load config: %v\n", err)
		os.Exit(1)
	}

	level := cfg.Logging.Level
	if logLevel != "" {
		level = logLevel
	}
	format := cfg.Logging.Format
	if logFormat != "" {
		format = logFormat
	}
	logging.SetDefault(logging.New(logging.ParseLevel(level), format))
}
