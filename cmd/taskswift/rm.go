package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
)

func rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			err = store.Remove(cmd.Context(), taskID)
			if err != nil {
				return fmt.Errorf("%w: %s", err, taskID)
			}

			fmt.Fprintln(cmd.OutOrStdout(), noticeTaskDeleted)
			return nil
		},
	}
}
