package analysis

// HistogramBins is the bin count of the ndvi histogram.
const HistogramBins = 50

// Bin is one histogram bar. Density integrates to 1 over all bins.
type Bin struct {
	Min, Max float64
	Count    int
	Density  float64
}

// Histogram splits the observed range into equal-width bins. Every bin is
// half-open except the last, which also holds the maximum.
func Histogram(values []float64, n int) []Bin {
	if len(values) == 0 || n <= 0 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	width := (hi - lo) / float64(n)
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Min = lo + float64(i)*width
		bins[i].Max = lo + float64(i+1)*width
	}
	bins[n-1].Max = hi
	for _, v := range values {
		i := int((v - lo) / width)
		if i >= n {
			i = n - 1
		}
		if i < 0 {
			i = 0
		}
		// The division can round across an edge; settle on the computed edges.
		if v < bins[i].Min && i > 0 {
			i--
		} else if i < n-1 && v >= bins[i].Max {
			i++
		}
		bins[i].Count++
	}
	total := float64(len(values))
	for i := range bins {
		bins[i].Density = float64(bins[i].Count) / (total * width)
	}
	return bins
}
