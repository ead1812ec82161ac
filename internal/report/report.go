// Package report assembles the ndvi statistics into a printable report and
// its on-disk artifacts.
package report

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
	"github.com/KaramelBytes/ndvistat/internal/dataset"
)

// ErrNoValues is returned when the ndvi column holds no usable value.
var ErrNoValues = errors.New("ndvi column has no values")

// Options controls report generation.
type Options struct {
	Boundary analysis.Boundary
}

// Report is the complete result of one run over a dataset.
type Report struct {
	Name         string
	Rows         int
	Boundary     analysis.Boundary
	Summary      analysis.Summary
	Distribution analysis.Distribution
	Outliers     analysis.Outliers
	Histogram    []analysis.Bin
	// Categories is parallel to Readings; -1 marks unclassified rows.
	Categories []int
	Readings   []dataset.Reading
	values     []float64
}

// Values returns the non-missing ndvi values in row order.
func (r *Report) Values() []float64 { return r.values }

// Build runs every statistic over ds.
func Build(ds *dataset.Dataset, opt Options) (*Report, error) {
	if ds == nil {
		return nil, errors.New("dataset is nil")
	}
	values := ds.Values()
	if len(values) == 0 {
		return nil, fmt.Errorf("%s: %w", ds.Name, ErrNoValues)
	}
	return &Report{
		Name:         ds.Name,
		Rows:         ds.Len(),
		Boundary:     opt.Boundary,
		Summary:      analysis.Describe(values, ds.Len()),
		Distribution: analysis.Distribute(ds.Readings, opt.Boundary),
		Outliers:     analysis.DetectOutliers(values),
		Histogram:    analysis.Histogram(values, analysis.HistogramBins),
		Categories:   analysis.Categorize(ds.Readings, opt.Boundary),
		Readings:     ds.Readings,
		values:       values,
	}, nil
}

// Text renders the report for the terminal.
func (r *Report) Text() string {
	var b strings.Builder
	s := r.Summary
	b.WriteString("[NDVI SUMMARY]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("%-6s %d\n", "count", s.Count))
	b.WriteString(fmt.Sprintf("%-6s %s\n", "mean", num(s.Mean)))
	b.WriteString(fmt.Sprintf("%-6s %s\n", "std", num(s.Std)))
	b.WriteString(fmt.Sprintf("%-6s %s\n", "min", num(s.Min)))
	for _, p := range s.Percentiles {
		b.WriteString(fmt.Sprintf("%-6s %s\n", fmt.Sprintf("%.0f%%", p.Q*100), num(p.Value)))
	}
	b.WriteString(fmt.Sprintf("%-6s %s\n", "max", num(s.Max)))

	b.WriteString("\n[DETAILS]\n")
	b.WriteString(fmt.Sprintf("Samples: %d\n", r.Rows))
	b.WriteString(fmt.Sprintf("Missing values: %d\n", s.Missing))
	b.WriteString(fmt.Sprintf("Unique values: %d\n", s.Unique))

	b.WriteString(fmt.Sprintf("\n[DISTRIBUTION] (%s-closed bands)\n", r.Boundary))
	for _, bc := range r.Distribution.Bands {
		b.WriteString(fmt.Sprintf("%s: %d samples (%.2f%%)\n", bc.Label, bc.Count, bc.Percent))
	}
	if u := r.Distribution.Unclassified; u.Count > 0 {
		b.WriteString(fmt.Sprintf("%s: %d samples (%.2f%%)\n", u.Label, u.Count, u.Percent))
	}

	o := r.Outliers
	b.WriteString("\n[OUTLIERS]\n")
	b.WriteString(fmt.Sprintf("Lower bound: %.3f\n", o.Lower))
	b.WriteString(fmt.Sprintf("Upper bound: %.3f\n", o.Upper))
	b.WriteString(fmt.Sprintf("Outliers: %d\n", o.Count))

	b.WriteString("\n[SHAPE]\n")
	b.WriteString(fmt.Sprintf("Mode: %.3f\n", s.Mode))
	b.WriteString(fmt.Sprintf("Skewness: %.3f\n", s.Skewness))
	b.WriteString(fmt.Sprintf("Kurtosis: %.3f\n", s.Kurtosis))
	return b.String()
}

func num(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6g", v)
}
