package main

import (
	"os"

	"github.com/spf13/cobra"

	xlog "tomato/internal/log"
)

const appName = "tomato"

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Pomodoro timer with focus and break sessions",
	Long: `tomato counts down focus and break sessions, switches between them
automatically and posts a desktop notification when a session ends.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDesktop()
	},
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Run the timer in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerm(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default <user config dir>/tomato/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(termCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger := xlog.Base()
		logger.Error().Err(err).Msg("tomato failed")
		os.Exit(1)
	}
}
