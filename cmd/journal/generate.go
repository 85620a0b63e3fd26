package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"daily-journal/internal/model"
)

var (
	generateUser uint
	generateDate string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Materialise due recurring tasks into a user's daily page",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		date := generateDate
		if date == "" {
			date = model.FormatDate(a.clock.Today())
		}
		res, err := a.occurrences.Generate(cmd.Context(), generateUser, date)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if res.Partial() {
			return fmt.Errorf("%d templates failed", len(res.Failed))
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().UintVarP(&generateUser, "user", "u", 0, "user id")
	generateCmd.Flags().StringVarP(&generateDate, "date", "d", "", "date as YYYY-MM-DD (default today)")
	_ = generateCmd.MarkFlagRequired("user")
}
