// Package chart renders the ndvi charts to image files with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
)

var (
	// ErrNoValues is returned instead of handing an empty column to the plotter.
	ErrNoValues = errors.New("no ndvi values to plot")
	// ErrUnsupportedFormat is returned for file extensions other than png, svg and pdf.
	ErrUnsupportedFormat = errors.New("unsupported chart format")
)

// Formats lists the accepted output formats.
var Formats = []string{"png", "svg", "pdf"}

var (
	barColor     = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	scatterColor = color.NRGBA{R: 70, G: 130, B: 180, A: 128}
	histColor    = color.NRGBA{R: 70, G: 130, B: 180, A: 178}
	lineColor    = color.RGBA{R: 0, G: 100, B: 0, A: 255}
)

// ParseFormat normalizes a format name such as "PNG" or ".svg".
func ParseFormat(s string) (string, error) {
	f := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for _, ok := range Formats {
		if f == ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (use %s)", ErrUnsupportedFormat, s, strings.Join(Formats, "|"))
}

// Overview writes the histogram, box plot, rank scatter and ECDF as a 2x2 grid.
func Overview(path string, values []float64) error {
	if len(values) == 0 {
		return ErrNoValues
	}
	format, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	hist, err := histogramPlot(values)
	if err != nil {
		return fmt.Errorf("histogram: %w", err)
	}
	box, err := boxPlot(values)
	if err != nil {
		return fmt.Errorf("box plot: %w", err)
	}
	scatter, err := rankPlot(sorted)
	if err != nil {
		return fmt.Errorf("scatter: %w", err)
	}
	ecdf, err := ecdfPlot(sorted)
	if err != nil {
		return fmt.Errorf("ecdf: %w", err)
	}

	plots := [][]*plot.Plot{
		{hist, box},
		{scatter, ecdf},
	}
	c, err := newCanvas(format, 15*vg.Inch, 12*vg.Inch)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      2,
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, draw.New(c))
	for j := range plots {
		for i := range plots[j] {
			plots[j][i].Draw(canvases[j][i])
		}
	}
	return writeCanvas(path, c)
}

// Distribution writes the band counts as a bar chart in band order.
func Distribution(path string, dist analysis.Distribution) error {
	if _, err := ParseFormat(filepath.Ext(path)); err != nil {
		return err
	}
	values := make(plotter.Values, len(dist.Bands))
	labels := make([]string, len(dist.Bands))
	for i, b := range dist.Bands {
		values[i] = float64(b.Count)
		labels[i] = b.Label
	}

	p := newPlot("NDVI band distribution", "NDVI band", "Samples")
	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
	p.Y.Min = 0

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

func newPlot(title, x, y string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = x
	p.Y.Label.Text = y
	p.Add(plotter.NewGrid())
	return p
}

func histogramPlot(values []float64) (*plot.Plot, error) {
	bins := analysis.Histogram(values, analysis.HistogramBins)
	hb := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hb[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Density}
	}
	if len(hb) == 0 {
		return nil, ErrNoValues
	}
	h := &plotter.Histogram{
		Bins:      hb,
		Width:     hb[0].Max - hb[0].Min,
		FillColor: histColor,
		LineStyle: plotter.DefaultLineStyle,
	}
	p := newPlot("NDVI histogram", "NDVI", "Density")
	p.Add(h)
	return p, nil
}

func boxPlot(values []float64) (*plot.Plot, error) {
	b, err := plotter.NewBoxPlot(vg.Points(60), 0, plotter.Values(values))
	if err != nil {
		return nil, err
	}
	b.FillColor = histColor
	p := newPlot("NDVI box plot", "", "NDVI")
	p.Add(b)
	p.NominalX("ndvi")
	return p, nil
}

func rankPlot(sorted []float64) (*plot.Plot, error) {
	pts := make(plotter.XYs, len(sorted))
	for i, v := range sorted {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = scatterColor
	s.GlyphStyle.Radius = vg.Points(1)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p := newPlot("Sorted NDVI values", "Sample rank", "NDVI")
	p.Add(s)
	return p, nil
}

func ecdfPlot(sorted []float64) (*plot.Plot, error) {
	pts := ECDF(sorted)
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.Color = lineColor
	l.Width = vg.Points(1.5)
	p := newPlot("NDVI cumulative distribution", "NDVI", "Cumulative probability")
	p.Add(l)
	p.Y.Min = 0
	p.Y.Max = 1
	return p, nil
}

// ECDF pairs each sorted value with rank/N for rank 1..N.
func ECDF(sorted []float64) plotter.XYs {
	n := float64(len(sorted))
	pts := make(plotter.XYs, len(sorted))
	for i, v := range sorted {
		pts[i].X = v
		pts[i].Y = float64(i+1) / n
	}
	return pts
}

func newCanvas(format string, w, h vg.Length) (vg.CanvasWriterTo, error) {
	switch format {
	case "png":
		return vgimg.PngCanvas{Canvas: vgimg.New(w, h)}, nil
	case "svg":
		return vgsvg.New(w, h), nil
	case "pdf":
		return vgpdf.New(w, h), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCanvas(path string, c vg.CanvasWriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}
