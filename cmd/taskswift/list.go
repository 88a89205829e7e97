package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
	"github.com/adanyl0v/taskswift/internal/query"
)

func listCmd() *cobra.Command {
	var (
		filter string
		sortBy string
		search string
		output string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks through the same filter, search and sort as the API.

Examples:
  taskswift list --filter active --sort dueDate
  taskswift list --search cat --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}
			f, err := query.ParseFilter(filter)
			if err != nil {
				return err
			}
			s, err := query.ParseSortKey(sortBy)
			if err != nil {
				return err
			}

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			tasks := store.View(query.Params{Filter: f, Sort: s, Search: search})
			return writeTasks(cmd.OutOrStdout(), output, tasks, time.Now())
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", string(query.FilterAll), "all, active, completed or high-priority")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", string(query.SortDateCreated), "dateCreated, dueDate, priority or title")
	cmd.Flags().StringVarP(&search, "search", "q", "", "only tasks whose title or description contains this text")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table, json or yaml")

	return cmd
}
