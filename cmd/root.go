package cmd

import (
	"github.com/spf13/cobra"

	"hostgen/internal/pkg/logging"
)

var (
	logLevelFlag  string
	logFormatFlag string
)

var rootCmd = &cobra.Command{
	Use:   "hostgen",
	Short: "hostgen renders declarative host definitions as dnsmasq reservations, zone records or env vars",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.InitLogger(logging.LogConfig{Level: logLevelFlag, Format: logFormatFlag})
	},
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormatFlag, "log-format", "simple", "Log format (text, json, simple, compact)")
}
