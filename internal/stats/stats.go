// Package stats computes summary statistics over earthquake feeds.
package stats

import (
	"fmt"
	"io"
	"iter"
	"slices"
)

// Source supplies the event measurements to summarize.
// *feed.Feed satisfies it.
type Source interface {
	Len() int
	Magnitudes() iter.Seq[float64]
	Depths() iter.Seq[float64]
}

// Mean returns the arithmetic mean of xs, or 0 for empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the median of xs, or 0 for empty input. The median
// of an even-length input is the mean of the two middle values.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := slices.Clone(xs)
	slices.Sort(s)
	mid := len(s) / 2
	if len(s)%2 == 0 {
		return (s[mid-1] + s[mid]) / 2
	}
	return s[mid]
}

// Summary holds the per-feed statistics printed by the stats command.
type Summary struct {
	Count           int
	MeanMagnitude   float64
	MedianMagnitude float64
	MeanDepth       float64
	MedianDepth     float64
}

// Summarize computes magnitude and depth statistics for a feed.
func Summarize(src Source) Summary {
	mags := slices.Collect(src.Magnitudes())
	depths := slices.Collect(src.Depths())
	return Summary{
		Count:           src.Len(),
		MeanMagnitude:   Mean(mags),
		MedianMagnitude: Median(mags),
		MeanDepth:       Mean(depths),
		MedianDepth:     Median(depths),
	}
}

// Format writes the summary, one metric per line, magnitudes and
// depths to one decimal place.
func (s Summary) Format(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"%d events processed.\n"+
			"Mean magnitude   = %.1f\n"+
			"Median magnitude = %.1f\n"+
			"Mean depth       = %.1f km\n"+
			"Median depth     = %.1f km\n",
		s.Count, s.MeanMagnitude, s.MedianMagnitude, s.MeanDepth, s.MedianDepth)
	return err
}
