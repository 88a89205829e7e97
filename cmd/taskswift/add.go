package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
	"github.com/adanyl0v/taskswift/internal/query"
)

func addCmd() *cobra.Command {
	var draft query.Draft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Long: `Add a task. Priority defaults to medium and category to personal.

Examples:
  taskswift add --title "Buy cat food" --due 2025-03-01 --category shopping`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := draft.Input()
			if err != nil {
				return err
			}

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			task, err := store.Add(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, noticeTaskAdded)
			fmt.Fprintf(out, "  [%s] %s\n", task.ID, task.Title)
			return nil
		},
	}

	bindDraftFlags(cmd, &draft)

	return cmd
}

func bindDraftFlags(cmd *cobra.Command, draft *query.Draft) {
	cmd.Flags().StringVarP(&draft.Title, "title", "t", "", "task title")
	cmd.Flags().StringVarP(&draft.Description, "description", "d", "", "task description")
	cmd.Flags().StringVar(&draft.DueDate, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().StringVarP(&draft.Priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&draft.Category, "category", "", "work, personal, shopping, health or other")
}
