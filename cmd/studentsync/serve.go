package main

import (
	"github.com/spf13/cobra"

	"github.com/yigit/studentsync/internal/server"
)

func newServeCmd(app *cliApp) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the create-student HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port != "" {
				app.cfg.Server.Port = port
			}

			srv, err := server.NewServer(cmd.Context(), app.cfg, app.lgr)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port; overrides server.port")

	return cmd
}
