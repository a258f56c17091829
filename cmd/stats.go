package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/quakefeeds/quakefeeds/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats <level> <period>",
	Short: "Print summary statistics for quakes in a feed",
	Long: "Fetches the USGS feed for the given severity level " +
		"(significant, 4.5, 2.5, 1.0, all) and period (hour, day, week, month) " +
		"and prints the event count plus mean and median magnitude and depth.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fd, err := loadFeed(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		summary := stats.Summarize(fd)
		if err := summary.Format(os.Stdout); err != nil {
			return eris.Wrap(err, "stats")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
