package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/ndvistat/internal/dataset"
)

// Boundary selects which side of a band is closed.
type Boundary int

const (
	// RightClosed puts an edge value in the lower band: (a, b].
	RightClosed Boundary = iota
	// LeftClosed puts an edge value in the upper band: [a, b).
	LeftClosed
)

func (b Boundary) String() string {
	if b == LeftClosed {
		return "left"
	}
	return "right"
}

// ParseBoundary accepts "right" or "left".
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "right", "right-closed":
		return RightClosed, nil
	case "left", "left-closed", "right-open":
		return LeftClosed, nil
	default:
		return RightClosed, fmt.Errorf("unsupported boundary: %s (use right|left)", s)
	}
}

// Band is one qualitative ndvi category.
type Band struct {
	Label string
	Lower float64
	Upper float64
}

// Bands partition [-1, 1] in category order. The outer edges are inclusive
// under both boundary conventions.
var Bands = []Band{
	{Label: "extremely low (<-0.5)", Lower: -1, Upper: -0.5},
	{Label: "very low (-0.5-0)", Lower: -0.5, Upper: 0},
	{Label: "low (0-0.2)", Lower: 0, Upper: 0.2},
	{Label: "moderate (0.2-0.4)", Lower: 0.2, Upper: 0.4},
	{Label: "good (0.4-0.6)", Lower: 0.4, Upper: 0.6},
	{Label: "very good (0.6-0.8)", Lower: 0.6, Upper: 0.8},
	{Label: "excellent (>0.8)", Lower: 0.8, Upper: 1},
}

// Unclassified labels values outside [-1, 1] and missing values.
const Unclassified = "unclassified"

// Contains reports whether v falls in band i under b.
func Contains(i int, v float64, b Boundary) bool {
	band := Bands[i]
	first, last := i == 0, i == len(Bands)-1
	if b == LeftClosed {
		return v >= band.Lower && (v < band.Upper || (last && v == band.Upper))
	}
	return (v > band.Lower || (first && v == band.Lower)) && v <= band.Upper
}

// Classify returns the band index of v, or -1.
func Classify(v float64, b Boundary) int {
	if math.IsNaN(v) {
		return -1
	}
	for i := range Bands {
		if Contains(i, v, b) {
			return i
		}
	}
	return -1
}

// Categorize classifies every reading; missing readings map to -1.
func Categorize(readings []dataset.Reading, b Boundary) []int {
	out := make([]int, len(readings))
	for i, r := range readings {
		if !r.Valid {
			out[i] = -1
			continue
		}
		out[i] = Classify(r.Value, b)
	}
	return out
}

// Label returns the band label for an index from Classify.
func Label(idx int) string {
	if idx < 0 || idx >= len(Bands) {
		return Unclassified
	}
	return Bands[idx].Label
}

// BandCount is the share of rows in one band.
type BandCount struct {
	Label   string
	Count   int
	Percent float64
}

// Distribution holds band counts in band order. Percentages use the total
// row count, unclassified rows included.
type Distribution struct {
	Total        int
	Bands        []BandCount
	Unclassified BandCount
}

// Distribute counts readings per band.
func Distribute(readings []dataset.Reading, b Boundary) Distribution {
	d := Distribution{Total: len(readings), Bands: make([]BandCount, len(Bands))}
	for i, band := range Bands {
		d.Bands[i].Label = band.Label
	}
	d.Unclassified.Label = Unclassified
	for _, idx := range Categorize(readings, b) {
		if idx < 0 {
			d.Unclassified.Count++
			continue
		}
		d.Bands[idx].Count++
	}
	if d.Total > 0 {
		for i := range d.Bands {
			d.Bands[i].Percent = float64(d.Bands[i].Count) * 100 / float64(d.Total)
		}
		d.Unclassified.Percent = float64(d.Unclassified.Count) * 100 / float64(d.Total)
	}
	return d
}
