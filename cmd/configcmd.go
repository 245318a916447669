package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/stefmolin/login-attempt-simulator/internal/config"
)

var configInitOut string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration commands",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the built-in defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Default().Write(configInitOut); err != nil {
			return err
		}
		slog.Info("config written", slog.String("path", configInitOut))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().StringVar(&configInitOut, "out", "loginsim.yaml", "output path for the config file")
}
