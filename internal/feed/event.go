package feed

import "time"

// Time returns the instant at which the event took place, in UTC.
func (e Event) Time() time.Time {
	return time.UnixMilli(e.Properties.Time).UTC()
}

// Location returns the event position. The feed guarantees at least
// three coordinates per event; New rejects documents that don't.
func (e Event) Location() Location {
	c := e.Geometry.Coordinates
	return Location{Lon: c[0], Lat: c[1], Depth: c[2]}
}

// Magnitude returns the event magnitude.
func (e Event) Magnitude() float64 {
	return e.Properties.Mag
}

// Place returns the text description of a named geographic region
// near the event.
func (e Event) Place() string {
	return e.Properties.Place
}

// Title returns the event title, e.g. "M 4.5 - 10km N of X".
func (e Event) Title() string {
	return e.Properties.Title
}
