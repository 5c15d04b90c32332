package main

import (
	"github.com/spf13/cobra"

	"accident-reconciliation/internal/server"
)

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload-and-download reconciliation API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			srv := server.New(a.uc, a.schema, &a.logger)

			ctx := a.context(cmd)
			listening, stopped := make(chan struct{}), make(chan struct{})
			go func() {
				defer close(stopped)
				select {
				case <-ctx.Done():
					if err := srv.Shutdown(); err != nil {
						a.logger.Error().Err(err).Msg("Shutdown failed")
					}
				case <-listening:
				}
			}()

			// Listen also returns when it fails to bind; release the watcher
			// and wait for any shutdown already in progress.
			err := srv.Listen(a.cfg.Addr)
			close(listening)
			<-stopped
			return err
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = a.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}
