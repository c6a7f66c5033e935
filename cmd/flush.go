package cmd

import (
	"context"
	"fmt"
	"spotter/internal/di"

	"github.com/spf13/cobra"
)

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Send queued sightings to the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, cleanup, err := di.InitRuntime(flags)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), rt.Config.Sync.FlushTimeout+rt.Config.Sync.ProbeTimeout)
		defer cancel()

		flushed, err := rt.Flush(ctx)
		if err != nil {
			return fmt.Errorf("flush failed after %d sightings: %w", flushed, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "flushed %d, queued %d\n", flushed, rt.Service.QueueLen())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(flushCmd)
}
