package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/quakefeeds/quakefeeds/internal/quakemap"
)

var (
	mapOutput string
	mapStyle  string
	mapWithin string
)

var mapCmd = &cobra.Command{
	Use:   "map <level> <period>",
	Short: "Render an HTML map of quakes in a feed",
	Long: "Fetches the USGS feed for the given severity level " +
		"(significant, 4.5, 2.5, 1.0, all) and period (hour, day, week, month) " +
		"and renders the quakes onto an HTML map.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		fd, err := loadFeed(ctx, args[0], args[1])
		if err != nil {
			return err
		}

		style := mapStyle
		if style == "" {
			style = cfg.Map.Style
		}
		opts := []quakemap.Option{quakemap.WithStyle(style)}

		if mapWithin != "" {
			bounds, err := parseBounds(mapWithin)
			if err != nil {
				return err
			}
			opts = append(opts, quakemap.WithinBounds(bounds))
		}

		var dest any
		if mapOutput != "" {
			dest = mapOutput
		}
		if err := quakemap.Write(fd, dest, opts...); err != nil {
			return eris.Wrap(err, "map")
		}

		if mapOutput != "" {
			zap.L().Info("map written",
				zap.String("file", mapOutput),
				zap.Int("events", fd.Len()),
			)
		}
		return nil
	},
}

// parseBounds parses "minLon,minLat,maxLon,maxLat" into XY bounds.
func parseBounds(s string) (*geom.Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, eris.Errorf("bounds %q: want minLon,minLat,maxLon,maxLat", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "bounds %q", s)
		}
		vals[i] = v
	}
	return geom.NewBounds(geom.XY).Set(vals[0], vals[1], vals[2], vals[3]), nil
}

func init() {
	mapCmd.Flags().StringVarP(&mapOutput, "output", "o", "", "output file (default stdout)")
	mapCmd.Flags().StringVarP(&mapStyle, "style", "s", "", "map style: plain or titled (default from config)")
	mapCmd.Flags().StringVar(&mapWithin, "within", "", "only plot quakes inside minLon,minLat,maxLon,maxLat")
	rootCmd.AddCommand(mapCmd)
}
