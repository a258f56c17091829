package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quakefeeds/quakefeeds/internal/feed"
	"github.com/quakefeeds/quakefeeds/internal/fetcher"
	"github.com/quakefeeds/quakefeeds/internal/quakemap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve feeds and maps over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate(); err != nil {
			return err
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		router := buildRouter(newFetcher(), cfg.Feed.BaseURL, cfg.Map.Style)

		srv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down feed server")
			_ = srv.Shutdown(ctx)
		}()

		zap.L().Info("starting feed server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "feed server")
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// buildRouter assembles the HTTP routes. Feeds are fetched fresh per
// request; nothing is cached across calls.
func buildRouter(f fetcher.Fetcher, baseURL, defaultStyle string) chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet},
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Get("/feeds/{level}/{period}", func(w http.ResponseWriter, req *http.Request) {
		fd, ok := fetchFeed(w, req, f, baseURL)
		if !ok {
			return
		}
		writeFeedJSON(w, fd)
	})

	r.Get("/maps/{level}/{period}", func(w http.ResponseWriter, req *http.Request) {
		fd, ok := fetchFeed(w, req, f, baseURL)
		if !ok {
			return
		}

		style := req.URL.Query().Get("style")
		if style == "" {
			style = defaultStyle
		}
		html, err := quakemap.Render(fd, quakemap.WithStyle(style))
		if err != nil {
			if errors.Is(err, quakemap.ErrUnknownStyle) {
				httpError(w, http.StatusBadRequest, err)
				return
			}
			httpError(w, http.StatusInternalServerError, err)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(html))
	})

	return r
}

// fetchFeed resolves the level/period path params and fetches the
// feed, writing the error response itself on failure.
func fetchFeed(w http.ResponseWriter, req *http.Request, f fetcher.Fetcher, baseURL string) (*feed.Feed, bool) {
	level := chi.URLParam(req, "level")
	period := chi.URLParam(req, "period")

	fd, err := feed.New(req.Context(), f, level, period, feed.WithBaseURL(baseURL))
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrInvalidLevel), errors.Is(err, feed.ErrInvalidPeriod):
			httpError(w, http.StatusBadRequest, err)
		default:
			httpError(w, http.StatusBadGateway, err)
		}
		return nil, false
	}
	return fd, true
}

func writeFeedJSON(w http.ResponseWriter, fd *feed.Feed) {
	type eventJSON struct {
		Mag   float64   `json:"mag"`
		Place string    `json:"place"`
		Time  time.Time `json:"time"`
		Lon   float64   `json:"lon"`
		Lat   float64   `json:"lat"`
		Depth float64   `json:"depth"`
	}

	resp := struct {
		Title     string      `json:"title"`
		URL       string      `json:"url"`
		Generated time.Time   `json:"generated"`
		Count     int         `json:"count"`
		BBox      []float64   `json:"bbox,omitempty"`
		Events    []eventJSON `json:"events"`
	}{
		Title:     fd.Title(),
		URL:       fd.URL(),
		Generated: fd.Generated(),
		Count:     fd.Len(),
		BBox:      fd.BBox(),
	}
	for ev := range fd.Events() {
		loc := ev.Location()
		resp.Events = append(resp.Events, eventJSON{
			Mag:   ev.Magnitude(),
			Place: ev.Place(),
			Time:  ev.Time(),
			Lon:   loc.Lon,
			Lat:   loc.Lat,
			Depth: loc.Depth,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

func httpError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// requestID tags each request with an ID for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", w.Header().Get("X-Request-ID")),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
