// Package feed wraps the USGS Earthquake Hazards Program GeoJSON
// summary feeds, providing typed read-only access to events and
// feed metadata.
//
// Feeds and a description of their format are available at
// http://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php
package feed

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/quakefeeds/quakefeeds/internal/fetcher"
)

// DefaultBaseURL is the root of the USGS summary feed endpoint.
const DefaultBaseURL = "http://earthquake.usgs.gov/earthquakes/feed/v1.0/summary"

// ErrIndex reports an event index outside the feed's event sequence.
var ErrIndex = eris.New("event index out of range")

// Feed is a captured USGS data feed. It is immutable except through
// Refresh, which replaces the contents wholesale on success. A Feed
// is not safe for concurrent use with Refresh.
type Feed struct {
	fetcher fetcher.Fetcher
	doc     document
}

// Option configures feed construction.
type Option func(*options)

type options struct {
	baseURL string
}

// WithBaseURL overrides the feed endpoint root.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// New validates level and period, fetches the matching summary feed
// and returns it. No network call is made when validation fails.
func New(ctx context.Context, f fetcher.Fetcher, level, period string, opts ...Option) (*Feed, error) {
	o := options{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(&o)
	}

	lv, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	pd, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/%s_%s.geojson", o.baseURL, lv, pd)
	doc, err := fetch(ctx, f, u)
	if err != nil {
		return nil, err
	}

	return &Feed{fetcher: f, doc: *doc}, nil
}

// fetch retrieves and decodes one feed document.
func fetch(ctx context.Context, f fetcher.Fetcher, url string) (*document, error) {
	body, err := f.Get(ctx, url)
	if err != nil {
		return nil, eris.Wrap(err, "feed: fetch")
	}
	defer body.Close() //nolint:errcheck

	doc, err := fetcher.DecodeJSONObject[document](body)
	if err != nil {
		return nil, eris.Wrap(err, "feed: malformed response")
	}

	for i, ev := range doc.Features {
		if len(ev.Geometry.Coordinates) < 3 {
			return nil, eris.Errorf("feed: malformed response: feature %d has %d coordinates, want 3",
				i, len(ev.Geometry.Coordinates))
		}
	}

	return doc, nil
}

// Refresh replaces the feed's contents with a fresh fetch of its own
// recorded URL. On any failure the prior contents are left untouched.
func (f *Feed) Refresh(ctx context.Context) error {
	doc, err := fetch(ctx, f.fetcher, f.doc.Metadata.URL)
	if err != nil {
		return err
	}
	f.doc = *doc
	return nil
}

// Len returns the event count reported by the feed metadata.
func (f *Feed) Len() int {
	return f.doc.Metadata.Count
}

// URL returns the URL this feed was generated from.
func (f *Feed) URL() string {
	return f.doc.Metadata.URL
}

// Title returns the feed title, e.g.
// "USGS Magnitude 4.5+ Earthquakes, Past Week".
func (f *Feed) Title() string {
	return f.doc.Metadata.Title
}

// Generated returns the time of feed generation, in UTC.
func (f *Feed) Generated() time.Time {
	return time.UnixMilli(f.doc.Metadata.Generated).UTC()
}

// BBox returns the feed bounding box: min longitude, min latitude,
// min depth, max longitude, max latitude, max depth.
func (f *Feed) BBox() []float64 {
	return f.doc.BBox
}

// Bounds returns the bounding box as XYZ geometry bounds, or nil if
// the feed carries no usable bbox.
func (f *Feed) Bounds() *geom.Bounds {
	b := f.doc.BBox
	if len(b) < 6 {
		return nil
	}
	return geom.NewBounds(geom.XYZ).Set(b[0], b[1], b[2], b[3], b[4], b[5])
}

// Event returns the record at the given position.
func (f *Feed) Event(i int) (Event, error) {
	if i < 0 || i >= len(f.doc.Features) {
		return Event{}, eris.Wrapf(ErrIndex, "index %d, %d events", i, len(f.doc.Features))
	}
	return f.doc.Features[i], nil
}

// EventTime returns the time of the event at the given position.
func (f *Feed) EventTime(i int) (time.Time, error) {
	ev, err := f.Event(i)
	if err != nil {
		return time.Time{}, err
	}
	return ev.Time(), nil
}

// Location returns the position of the event at the given index.
func (f *Feed) Location(i int) (Location, error) {
	ev, err := f.Event(i)
	if err != nil {
		return Location{}, err
	}
	return ev.Location(), nil
}

// Place returns the place description of the event at the given index.
func (f *Feed) Place(i int) (string, error) {
	ev, err := f.Event(i)
	if err != nil {
		return "", err
	}
	return ev.Place(), nil
}

// Magnitude returns the magnitude of the event at the given index.
func (f *Feed) Magnitude(i int) (float64, error) {
	ev, err := f.Event(i)
	if err != nil {
		return 0, err
	}
	return ev.Magnitude(), nil
}

// Depth returns the depth in km of the event at the given index.
func (f *Feed) Depth(i int) (float64, error) {
	ev, err := f.Event(i)
	if err != nil {
		return 0, err
	}
	return ev.Location().Depth, nil
}

// EventTitle returns the title of the event at the given index.
func (f *Feed) EventTitle(i int) (string, error) {
	ev, err := f.Event(i)
	if err != nil {
		return "", err
	}
	return ev.Title(), nil
}

// Events iterates over all events in the feed. Each call starts a
// fresh traversal; the returned sequence can be ranged any number of
// times.
func (f *Feed) Events() iter.Seq[Event] {
	return func(yield func(Event) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev) {
				return
			}
		}
	}
}

// EventTimes iterates over all event times.
func (f *Feed) EventTimes() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev.Time()) {
				return
			}
		}
	}
}

// Locations iterates over all event positions.
func (f *Feed) Locations() iter.Seq[Location] {
	return func(yield func(Location) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev.Location()) {
				return
			}
		}
	}
}

// Places iterates over all place descriptions.
func (f *Feed) Places() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev.Place()) {
				return
			}
		}
	}
}

// Magnitudes iterates over all event magnitudes.
func (f *Feed) Magnitudes() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev.Magnitude()) {
				return
			}
		}
	}
}

// Depths iterates over all event depths in km.
func (f *Feed) Depths() iter.Seq[float64] {
	return func(yield func(float64) bool) {
		for _, ev := range f.doc.Features {
			if !yield(ev.Location().Depth) {
				return
			}
		}
	}
}
