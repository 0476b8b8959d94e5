package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	linktest "github.com/nbuchwitz/test-serial"
)

func newServerCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Echo every received line back with TX replaced by RX",
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info().Msg("echo server running, interrupt to stop")

			server := linktest.NewServer(port, log)
			err = server.Serve(ctx)
			if errors.Is(err, context.Canceled) {
				// Interruption is the one expected way to stop serving.
				log.Info().EmbedObject(port.Metrics().Snapshot()).Msg("echo server stopped")
				return nil
			}
			return err
		},
	}
}
