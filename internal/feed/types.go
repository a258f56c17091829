package feed

// document is the deserialized GeoJSON summary feed.
// See http://earthquake.usgs.gov/earthquakes/feed/v1.0/geojson.php
// for the format description.
type document struct {
	Type     string    `json:"type"`
	Metadata metadata  `json:"metadata"`
	BBox     []float64 `json:"bbox"`
	Features []Event   `json:"features"`
}

type metadata struct {
	Generated int64  `json:"generated"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	API       string `json:"api"`
	Count     int    `json:"count"`
}

// Event is a single earthquake record from the feed.
type Event struct {
	Type       string     `json:"type"`
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties holds the descriptive fields of an event.
type Properties struct {
	Mag   float64 `json:"mag"`
	Place string  `json:"place"`
	Time  int64   `json:"time"`
	Title string  `json:"title"`
}

// Geometry holds the event position. Coordinates follow the GeoJSON
// convention: [longitude, latitude, depth-in-km].
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// Location is an event position in named-field form.
type Location struct {
	Lon   float64
	Lat   float64
	Depth float64
}
