package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	linktest "github.com/nbuchwitz/test-serial"
)

func newClientCmd(opts *rootOptions) *cobra.Command {
	var numRuns int

	cmd := &cobra.Command{
		Use:   "client",
		Short: "Drive echo exchanges against a peer running the echo server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			port, log, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			client := linktest.NewClient(port, log)
			if err := client.Run(ctx, numRuns); err != nil {
				return err
			}

			log.Info().EmbedObject(port.Metrics().Snapshot()).Msg("all exchanges matched")
			fmt.Println("TEST OK")
			return nil
		},
	}

	cmd.Flags().IntVar(&numRuns, "num-runs", linktest.DefaultNumRuns, "number of echo test runs")
	return cmd
}
