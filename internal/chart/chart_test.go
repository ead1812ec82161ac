package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KaramelBytes/ndvistat/internal/analysis"
	"github.com/KaramelBytes/ndvistat/internal/dataset"
)

var sample = []float64{-0.6, -0.1, 0.1, 0.3, 0.5, 0.7, 0.9, 0.42, 0.44, 0.47}

func TestOverview_WritesPNG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "overview.png")
	if err := Overview(p, sample); err != nil {
		t.Fatalf("Overview: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(b, []byte("\x89PNG")) {
		t.Fatalf("not a png")
	}
}

func TestOverview_SVG(t *testing.T) {
	p := filepath.Join(t.TempDir(), "overview.svg")
	if err := Overview(p, sample); err != nil {
		t.Fatalf("Overview: %v", err)
	}
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(b, []byte("<svg")) {
		t.Fatalf("not an svg")
	}
}

func TestOverview_Errors(t *testing.T) {
	dir := t.TempDir()
	if err := Overview(filepath.Join(dir, "a.png"), nil); !errors.Is(err, ErrNoValues) {
		t.Fatalf("expected ErrNoValues, got %v", err)
	}
	if err := Overview(filepath.Join(dir, "a.gif"), sample); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDistribution_WritesChart(t *testing.T) {
	rs := make([]dataset.Reading, len(sample))
	for i, v := range sample {
		rs[i] = dataset.Reading{Value: v, Valid: true}
	}
	d := analysis.Distribute(rs, analysis.RightClosed)
	p := filepath.Join(t.TempDir(), "bands.png")
	if err := Distribution(p, d); err != nil {
		t.Fatalf("Distribution: %v", err)
	}
	if fi, err := os.Stat(p); err != nil || fi.Size() == 0 {
		t.Fatalf("chart not written: %v", err)
	}
}

func TestECDF(t *testing.T) {
	pts := ECDF([]float64{0.1, 0.2, 0.4, 0.8})
	want := []float64{0.25, 0.5, 0.75, 1}
	for i, p := range pts {
		if p.Y != want[i] {
			t.Fatalf("point %d: y=%v want %v", i, p.Y, want[i])
		}
	}
	if pts[3].X != 0.8 {
		t.Fatalf("x should be the sorted value")
	}
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]string{"PNG": "png", ".svg": "svg", " pdf ": "pdf"} {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q)=%q,%v", in, got, err)
		}
	}
	if _, err := ParseFormat("jpeg"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}
