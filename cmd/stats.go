package cmd

import (
	"context"
	"fmt"
	"spotter/internal/di"
	"spotter/internal/models"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var (
	statsUser string
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print sighting statistics for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, cleanup, err := di.InitRuntime(flags)
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, cancel := context.WithTimeout(context.Background(), rt.Config.Remote.Timeout+rt.Config.Sync.ProbeTimeout)
		defer cancel()

		rt.Monitor.Probe(ctx)
		stats, err := rt.Service.Stats(ctx, statsUser)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if statsJSON {
			data, err := json.MarshalIndent(stats, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		printStats(cmd, stats, rt.Service.IsOnline())
		return nil
	},
}

func printStats(cmd *cobra.Command, stats models.SightingStats, online bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Total sightings:  %d\n", stats.TotalSightings)
	fmt.Fprintf(out, "  three-door:     %d\n", stats.ByModel.ThreeDoor)
	fmt.Fprintf(out, "  five-door:      %d\n", stats.ByModel.FiveDoor)
	fmt.Fprintf(out, "Most seen color:  %s (%s) x%d\n", stats.MostFrequentColor.Name, stats.MostFrequentColor.Color, stats.MostFrequentColor.Count)
	if !online {
		fmt.Fprintln(out, "(offline: queued sightings only)")
	}
}

func init() {
	statsCmd.Flags().StringVarP(&statsUser, "user", "u", "", "user id")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print JSON")
	_ = statsCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(statsCmd)
}
