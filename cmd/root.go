package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/quakefeeds/quakefeeds/internal/config"
	"github.com/quakefeeds/quakefeeds/internal/feed"
	"github.com/quakefeeds/quakefeeds/internal/fetcher"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "quakefeeds",
	Short: "USGS earthquake feed tools",
	Long:  "Fetches USGS Earthquake Hazards Program GeoJSON feeds and renders HTML maps or summary statistics.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// newFetcher builds the HTTP fetcher from config.
func newFetcher() *fetcher.HTTPFetcher {
	limiters := fetcher.DefaultRateLimiters()
	if cfg.Feed.RatePerSec > 0 {
		limiters["earthquake.usgs.gov"] = rate.NewLimiter(rate.Limit(cfg.Feed.RatePerSec), cfg.Feed.Burst)
	}
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		UserAgent:    cfg.Feed.UserAgent,
		Timeout:      time.Duration(cfg.Feed.TimeoutSecs) * time.Second,
		RateLimiters: limiters,
	})
}

// loadFeed fetches the feed named by the level and period arguments.
func loadFeed(ctx context.Context, level, period string) (*feed.Feed, error) {
	fd, err := feed.New(ctx, newFetcher(), level, period, feed.WithBaseURL(cfg.Feed.BaseURL))
	if err != nil {
		return nil, err
	}
	zap.L().Debug("feed loaded",
		zap.String("url", fd.URL()),
		zap.Int("events", fd.Len()),
	)
	return fd, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
