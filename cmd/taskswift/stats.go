package main

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
)

func statsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkOutput(output); err != nil {
				return err
			}

			store, err := app.LoadTaskStore(cmd.Context())
			if err != nil {
				return err
			}
			return writeStats(cmd.OutOrStdout(), output, store.Stats())
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "table, json or yaml")

	return cmd
}
