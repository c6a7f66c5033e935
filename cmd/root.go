package cmd

import (
	"fmt"
	"os"
	"spotter/internal/structures"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var flags = &structures.CliFlags{}

var rootCmd = &cobra.Command{
	Use:   "spotter",
	Short: "Car sighting logger with an offline queue",
	Long: `spotter records car sightings and per-user statistics.

Sightings go to the remote store while it is reachable and to a local
offline queue otherwise; the queue is flushed when connectivity returns.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func registerGlobalFlags(fs *pflag.FlagSet, target *structures.CliFlags) {
	fs.StringVarP(&target.ConfigPath, "config", "c", "config/config.yaml", "path to config file")
	fs.BoolVarP(&target.DebugMode, "debug", "d", false, "mirror logs to the console")
}

func init() {
	registerGlobalFlags(rootCmd.PersistentFlags(), flags)
}
