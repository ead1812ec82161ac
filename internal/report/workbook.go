package report

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
)

const (
	sheetSummary      = "Summary"
	sheetDistribution = "Distribution"
	sheetOutliers     = "Outliers"
	sheetHistogram    = "Histogram"
	sheetValues       = "Values"
)

// WriteWorkbook exports the report as an xlsx workbook.
func (r *Report) WriteWorkbook(path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{sheetDistribution, sheetOutliers, sheetHistogram, sheetValues} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	s := r.Summary
	summary := [][]any{
		{"Statistic", "Value"},
		{"count", s.Count},
		{"missing", s.Missing},
		{"unique", s.Unique},
		{"mean", cell(s.Mean)},
		{"std", cell(s.Std)},
		{"min", cell(s.Min)},
	}
	for _, p := range s.Percentiles {
		summary = append(summary, []any{fmt.Sprintf("%.0f%%", p.Q*100), cell(p.Value)})
	}
	summary = append(summary,
		[]any{"max", cell(s.Max)},
		[]any{"mode", cell(s.Mode)},
		[]any{"skewness", cell(s.Skewness)},
		[]any{"kurtosis", cell(s.Kurtosis)},
	)
	if err := writeRows(f, sheetSummary, summary); err != nil {
		return err
	}

	dist := [][]any{{"Band", "Samples", "Percent"}}
	for _, bc := range r.Distribution.Bands {
		dist = append(dist, []any{bc.Label, bc.Count, round(bc.Percent, 2)})
	}
	u := r.Distribution.Unclassified
	dist = append(dist, []any{u.Label, u.Count, round(u.Percent, 2)})
	if err := writeRows(f, sheetDistribution, dist); err != nil {
		return err
	}

	o := r.Outliers
	if err := writeRows(f, sheetOutliers, [][]any{
		{"Statistic", "Value"},
		{"Q1", cell(o.Q1)},
		{"Q3", cell(o.Q3)},
		{"IQR", cell(o.IQR)},
		{"lower bound", cell(round(o.Lower, 3))},
		{"upper bound", cell(round(o.Upper, 3))},
		{"outliers", o.Count},
	}); err != nil {
		return err
	}

	hist := [][]any{{"Min", "Max", "Count", "Density"}}
	for _, b := range r.Histogram {
		hist = append(hist, []any{b.Min, b.Max, b.Count, b.Density})
	}
	if err := writeRows(f, sheetHistogram, hist); err != nil {
		return err
	}

	vals := make([][]any, 0, len(r.Readings)+1)
	vals = append(vals, []any{"Row", "NDVI", "Band"})
	for i, rd := range r.Readings {
		var v any
		if rd.Valid {
			v = rd.Value
		}
		vals = append(vals, []any{i + 1, v, analysis.Label(r.Categories[i])})
	}
	if err := writeRows(f, sheetValues, vals); err != nil {
		return err
	}

	if err := f.SetColWidth(sheetDistribution, "A", "A", 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheetValues, "C", "C", 24); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return fmt.Errorf("%s: %w", sheet, err)
			}
			if err := f.SetCellValue(sheet, name, v); err != nil {
				return fmt.Errorf("%s!%s: %w", sheet, name, err)
			}
		}
	}
	return nil
}

// cell keeps NaN out of the workbook; excel has no representation for it.
func cell(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "NaN"
	}
	return v
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
