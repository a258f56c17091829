// Package quakemap renders earthquake feed events onto a
// self-contained HTML map.
package quakemap

import (
	"iter"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"

	"github.com/quakefeeds/quakefeeds/internal/feed"
)

// MaxPoints is the most events plotted on one map, a limit imposed
// by the mapping API.
const MaxPoints = 300

// Source supplies an ordered sequence of feed events to plot.
// *feed.Feed satisfies it.
type Source interface {
	Events() iter.Seq[feed.Event]
	Title() string
}

// Point is one plotted marker. Note the latitude-first order,
// swapped from the GeoJSON (lon, lat) convention.
type Point struct {
	Lat   float64
	Lon   float64
	Mag   float64
	Place string
}

var (
	// ErrUnknownStyle reports a style name outside the built-in set.
	ErrUnknownStyle = eris.New("unknown map style")
	// ErrRendererConfig reports an incomplete custom renderer setup.
	ErrRendererConfig = eris.New("incomplete renderer configuration")
	// ErrBadDestination reports an unusable write destination.
	ErrBadDestination = eris.New("unsuitable output destination")
)

// Option configures rendering.
type Option func(*options)

type options struct {
	style    string
	renderer Renderer
	within   *geom.Bounds
}

// WithStyle selects a built-in template style.
func WithStyle(style string) Option {
	return func(o *options) { o.style = style }
}

// WithRenderer substitutes a caller-supplied renderer for the
// built-in templates. WithStyle is ignored when a renderer is set.
func WithRenderer(r Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithinBounds plots only events inside the given XY bounds.
func WithinBounds(b *geom.Bounds) Option {
	return func(o *options) { o.within = b }
}

// Render projects at most MaxPoints events from the source and
// renders them as an HTML document.
func Render(src Source, opts ...Option) (string, error) {
	o := options{style: StylePlain}
	for _, opt := range opts {
		opt(&o)
	}

	r := o.renderer
	if r == nil {
		tr, err := NewTemplateRenderer(o.style)
		if err != nil {
			return "", err
		}
		r = tr
	}

	return r.Render(project(src, o.within), src.Title())
}

// project flattens source events into plot points, swapping the
// coordinate order to (lat, lon) and capping at MaxPoints.
func project(src Source, within *geom.Bounds) []Point {
	var pts []Point
	for ev := range src.Events() {
		loc := ev.Location()
		if within != nil && !within.OverlapsPoint(geom.XY, geom.Coord{loc.Lon, loc.Lat}) {
			continue
		}
		pts = append(pts, Point{
			Lat:   loc.Lat,
			Lon:   loc.Lon,
			Mag:   ev.Magnitude(),
			Place: ev.Place(),
		})
		if len(pts) == MaxPoints {
			break
		}
	}
	return pts
}
