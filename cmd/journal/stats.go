package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	statsUser uint
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the journal dashboard of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.stats.Get(cmd.Context(), statsUser)
		if err != nil {
			return err
		}
		if statsJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(stats)
		}
		fmt.Println(renderStats(stats))
		return nil
	},
}

func init() {
	statsCmd.Flags().UintVarP(&statsUser, "user", "u", 0, "user id")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print raw JSON")
	_ = statsCmd.MarkFlagRequired("user")
}
