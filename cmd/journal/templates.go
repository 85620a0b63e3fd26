package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"daily-journal/internal/model"
)

var (
	applyUser  uint
	applyStart string
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List challenge templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		fmt.Println(renderChallenges(a.templates.List()))
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <template-id>",
	Short: "Add a challenge's recurring tasks to a user's journal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		start := applyStart
		if start == "" {
			start = model.FormatDate(a.clock.Today())
		}
		res, err := a.templates.Apply(cmd.Context(), applyUser, args[0], start)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d recurring tasks from %s (entry %d)\n", res.Challenge, res.TasksCreated, res.StartDate, res.EntryID)
		return nil
	},
}

func init() {
	applyCmd.Flags().UintVarP(&applyUser, "user", "u", 0, "user id")
	applyCmd.Flags().StringVarP(&applyStart, "start", "s", "", "start date as YYYY-MM-DD (default today)")
	_ = applyCmd.MarkFlagRequired("user")
	templatesCmd.AddCommand(applyCmd)
}
