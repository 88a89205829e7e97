package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
	"github.com/adanyl0v/taskswift/internal/query"
)

var errNothingToEdit = errors.New("nothing to edit, set at least one field flag")

func editCmd() *cobra.Command {
	var flags query.Draft

	cmd := &cobra.Command{
		Use:   "edit <task-id>",
		Short: "Edit a task",
		Long: `Edit a task. Only the fields whose flags are set change.
Pass --due "" to clear the due date.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID := args[0]

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			task, err := store.Get(taskID)
			if err != nil {
				return fmt.Errorf("%w: %s", err, taskID)
			}

			draft, changed := mergeDraft(query.DraftFromTask(task), flags, cmd.Flags().Changed)
			if !changed {
				return errNothingToEdit
			}

			patch, err := draft.Patch()
			if err != nil {
				return err
			}

			task, err = store.Update(cmd.Context(), taskID, patch)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, noticeTaskUpdated)
			fmt.Fprintf(out, "  [%s] %s\n", task.ID, task.Title)
			return nil
		},
	}

	bindDraftFlags(cmd, &flags)

	return cmd
}

// mergeDraft overlays the flags that were set onto the current draft.
func mergeDraft(current, flags query.Draft, isSet func(name string) bool) (query.Draft, bool) {
	changed := false
	overlay := func(name string, dst *string, src string) {
		if isSet(name) {
			*dst = src
			changed = true
		}
	}

	overlay("title", &current.Title, flags.Title)
	overlay("description", &current.Description, flags.Description)
	overlay("due", &current.DueDate, flags.DueDate)
	overlay("priority", &current.Priority, flags.Priority)
	overlay("category", &current.Category, flags.Category)

	return current, changed
}
