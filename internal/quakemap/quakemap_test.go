package quakemap

import (
	"bytes"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/quakefeeds/quakefeeds/internal/feed"
)

type fakeSource struct {
	title  string
	events []feed.Event
}

func (s fakeSource) Title() string { return s.title }

func (s fakeSource) Events() iter.Seq[feed.Event] {
	return func(yield func(feed.Event) bool) {
		for _, ev := range s.events {
			if !yield(ev) {
				return
			}
		}
	}
}

func ev(lon, lat, depth, mag float64, place string) feed.Event {
	return feed.Event{
		Properties: feed.Properties{Mag: mag, Place: place},
		Geometry:   feed.Geometry{Type: "Point", Coordinates: []float64{lon, lat, depth}},
	}
}

// recorder captures the projected points handed to the renderer.
type recorder struct {
	points []Point
	title  string
}

func (r *recorder) Render(points []Point, title string) (string, error) {
	r.points = points
	r.title = title
	return "rendered", nil
}

func twoQuakeSource() fakeSource {
	return fakeSource{
		title: "USGS Magnitude 4.5+ Earthquakes, Past Week",
		events: []feed.Event{
			ev(-120.0, 35.0, 5.2, 4.5, "10km N of X"),
			ev(-119.5, 34.8, 3.1, 2.1, "5km S of Y"),
		},
	}
}

func TestRender_SwapsCoordinates(t *testing.T) {
	rec := &recorder{}
	_, err := Render(twoQuakeSource(), WithRenderer(rec))
	require.NoError(t, err)

	require.Len(t, rec.points, 2)
	assert.Equal(t, Point{Lat: 35.0, Lon: -120.0, Mag: 4.5, Place: "10km N of X"}, rec.points[0])
	assert.Equal(t, Point{Lat: 34.8, Lon: -119.5, Mag: 2.1, Place: "5km S of Y"}, rec.points[1])
}

func TestRender_MarkerRowLiteral(t *testing.T) {
	html, err := Render(twoQuakeSource())
	require.NoError(t, err)

	// Latitude first, then longitude, then the labelled magnitude.
	assert.Contains(t, html, `[35,-120,"M4.5: 10km N of X"]`)
	assert.Contains(t, html, `[34.8,-119.5,"M2.1: 5km S of Y"]`)
}

func TestRender_CapsAtMaxPoints(t *testing.T) {
	src := fakeSource{title: "big feed"}
	for i := range 400 {
		src.events = append(src.events, ev(float64(i%180), float64(i%80), 10, 3.0, fmt.Sprintf("quake %d", i)))
	}

	rec := &recorder{}
	_, err := Render(src, WithRenderer(rec))
	require.NoError(t, err)
	assert.Len(t, rec.points, MaxPoints)
}

func TestRender_UnknownStyle(t *testing.T) {
	_, err := Render(twoQuakeSource(), WithStyle("fancy"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStyle)
}

func TestRender_TitledIncludesTitle(t *testing.T) {
	html, err := Render(twoQuakeSource(), WithStyle(StyleTitled))
	require.NoError(t, err)
	assert.Contains(t, html, "USGS Magnitude 4.5+ Earthquakes, Past Week")
	assert.Contains(t, html, "2 events plotted")
}

func TestRender_PlainOmitsHeader(t *testing.T) {
	html, err := Render(twoQuakeSource(), WithStyle(StylePlain))
	require.NoError(t, err)
	assert.NotContains(t, html, "events plotted")
	assert.Contains(t, html, "initMap")
}

func TestWithinBounds(t *testing.T) {
	// Box around the first quake only.
	bounds := geom.NewBounds(geom.XY).Set(-121.0, 34.9, -119.9, 35.1)

	rec := &recorder{}
	_, err := Render(twoQuakeSource(), WithRenderer(rec), WithinBounds(bounds))
	require.NoError(t, err)

	require.Len(t, rec.points, 1)
	assert.Equal(t, "10km N of X", rec.points[0].Place)
}

func TestNewCustomRenderer(t *testing.T) {
	fsys := fstest.MapFS{
		"mine.html": &fstest.MapFile{Data: []byte("<p>{{.Count}} quakes for {{.Title}}</p>")},
	}

	r, err := NewCustomRenderer(fsys, "mine.html")
	require.NoError(t, err)

	html, err := Render(twoQuakeSource(), WithRenderer(r))
	require.NoError(t, err)
	assert.Contains(t, html, "2 quakes for USGS Magnitude 4.5+ Earthquakes, Past Week")
}

func TestNewCustomRenderer_MissingFS(t *testing.T) {
	_, err := NewCustomRenderer(nil, "mine.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRendererConfig)
}

func TestNewCustomRenderer_MissingName(t *testing.T) {
	fsys := fstest.MapFS{}
	_, err := NewCustomRenderer(fsys, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRendererConfig)
}

func TestWrite_FileMatchesRender(t *testing.T) {
	src := twoQuakeSource()
	want, err := Render(src, WithStyle(StylePlain))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "map.html")
	require.NoError(t, Write(src, path, WithStyle(StylePlain)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, string(got))
}

func TestWrite_Writer(t *testing.T) {
	src := twoQuakeSource()
	want, err := Render(src)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(src, &buf))
	assert.Equal(t, want, buf.String())
}

func TestWrite_BadDestination(t *testing.T) {
	err := Write(twoQuakeSource(), 42)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadDestination)
}

func TestWrite_RenderErrorPropagates(t *testing.T) {
	var buf bytes.Buffer
	err := Write(twoQuakeSource(), &buf, WithStyle("bogus"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownStyle)
	assert.Zero(t, buf.Len())
}
