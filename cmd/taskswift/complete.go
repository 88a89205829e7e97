package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
)

func completeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Toggle the completion of a task",
		Long:  `Mark a pending task as completed, or a completed task as pending again.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			task, err := store.ToggleComplete(cmd.Context(), taskID)
			if err != nil {
				return fmt.Errorf("%w: %s", err, taskID)
			}

			state := "pending"
			if task.Completed {
				state = "completed"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, noticeTaskUpdated)
			fmt.Fprintf(out, "  [%s] %s is %s\n", task.ID, task.Title, state)
			return nil
		},
	}
}
