package analysis

import (
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// Percentiles reported by Describe, as fractions.
var Percentiles = []float64{0.05, 0.25, 0.5, 0.75, 0.95}

// Percentile is one quantile of the ndvi column.
type Percentile struct {
	Q     float64
	Value float64
}

// Summary holds the descriptive statistics of the ndvi column.
// Every float field is NaN when there are no values.
type Summary struct {
	Count   int
	Missing int
	Unique  int

	Mean float64
	Std  float64
	Min  float64
	Max  float64

	Percentiles []Percentile

	Mode     float64
	Skewness float64
	Kurtosis float64
}

// Median returns the 50th percentile.
func (s Summary) Median() float64 { return s.Percentile(0.5) }

// Percentile looks up a reported quantile; NaN if q was not computed.
func (s Summary) Percentile(q float64) float64 {
	for _, p := range s.Percentiles {
		if p.Q == q {
			return p.Value
		}
	}
	return math.NaN()
}

// Describe computes the summary of values. total is the number of rows,
// missing rows included.
func Describe(values []float64, total int) Summary {
	s := Summary{
		Count:    len(values),
		Missing:  total - len(values),
		Mean:     math.NaN(),
		Std:      math.NaN(),
		Min:      math.NaN(),
		Max:      math.NaN(),
		Mode:     math.NaN(),
		Skewness: math.NaN(),
		Kurtosis: math.NaN(),
	}
	s.Percentiles = make([]Percentile, len(Percentiles))
	for i, q := range Percentiles {
		s.Percentiles[i] = Percentile{Q: q, Value: math.NaN()}
	}
	if len(values) == 0 {
		return s
	}

	sample := stats.Sample{Xs: append([]float64(nil), values...)}
	sample.Sort()
	sorted := sample.Xs

	s.Mean = sample.Mean()
	if len(sorted) > 1 {
		s.Std = sample.StdDev()
	}
	s.Min, s.Max = sample.Bounds()
	for i, q := range Percentiles {
		s.Percentiles[i].Value = Quantile(sorted, q)
	}
	s.Unique, s.Mode = uniqueMode(sorted)
	s.Skewness = skewness(sorted, s.Mean)
	s.Kurtosis = kurtosis(sorted, s.Mean)
	return s
}

// Quantile interpolates linearly between the ranked observations of sorted,
// at position q*(n-1).
func Quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// sortedCopy returns values in ascending order without touching the input.
func sortedCopy(values []float64) []float64 {
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	return cp
}

// uniqueMode walks the sorted values once; ties resolve to the smallest value.
func uniqueMode(sorted []float64) (unique int, mode float64) {
	best := 0
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j] == sorted[i] {
			j++
		}
		unique++
		if j-i > best {
			best = j - i
			mode = sorted[i]
		}
		i = j
	}
	return unique, mode
}

// skewness is the adjusted Fisher-Pearson coefficient G1.
func skewness(xs []float64, mean float64) float64 {
	n := float64(len(xs))
	if n < 3 {
		return math.NaN()
	}
	var m2, m3 float64
	for _, x := range xs {
		d := x - mean
		m2 += d * d
		m3 += d * d * d
	}
	m2 /= n
	m3 /= n
	if m2 == 0 {
		return 0
	}
	return math.Sqrt(n*(n-1)) / (n - 2) * m3 / math.Pow(m2, 1.5)
}

// kurtosis is the unbiased excess kurtosis G2.
func kurtosis(xs []float64, mean float64) float64 {
	n := float64(len(xs))
	if n < 4 {
		return math.NaN()
	}
	var m2, m4 float64
	for _, x := range xs {
		d := x - mean
		d2 := d * d
		m2 += d2
		m4 += d2 * d2
	}
	if m2 == 0 {
		return 0
	}
	adj := 3 * (n - 1) * (n - 1) / ((n - 2) * (n - 3))
	num := n * (n + 1) * (n - 1) * m4
	den := (n - 2) * (n - 3) * m2 * m2
	return num/den - adj
}
