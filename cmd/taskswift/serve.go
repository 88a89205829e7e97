package main

import (
	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskswift/internal/app"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Long: `Serve the task API over HTTP until interrupted.

The storage backend, listen address and optional bearer-token check are
read from the configuration.`,
		Args: cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store := app.MustLoadTaskStore(cmd.Context())
			app.MustListenAndServeHTTP(cmd.Context(), store)
		},
	}
}
