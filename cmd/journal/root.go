package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	rootCmd    *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:   "journal",
		Short: "Bullet journal with recurring tasks, streaks and statistics",
		Long: `journal keeps daily pages of tasks. Recurring tasks are copied onto the
pages where they are due, completions feed streaks, and the dashboard
summarises the whole history.

Settings come from an optional YAML file (--config) and environment
variables such as DATABASE_URL, TELEGRAM_TOKEN and HTTP_ADDR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

// Execute runs the root command
func Execute(version string) error {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(templatesCmd)

	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
