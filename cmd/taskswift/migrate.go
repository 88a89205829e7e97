package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tables of the configured storage backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := app.OpenRepository(cmd.Context())
			if err != nil {
				return err
			}

			err = app.Migrate(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Storage is up to date")
			return nil
		},
	}
}
