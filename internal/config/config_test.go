package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.InputPath != DefaultInputPath || c.OutputDir != "ndvi_report" {
		t.Fatalf("unexpected paths %+v", c)
	}
	if c.ChartFormat != "png" || !c.Charts || c.Workbook || c.Boundary != "right" {
		t.Fatalf("unexpected defaults %+v", c)
	}
}

func TestSaveLoad_RoundTripAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "cfg.yaml")
	c := &Global{InputPath: "data", OutputDir: "out", ChartFormat: "svg", Charts: false, Workbook: true, Boundary: "left"}
	if err := Save(c, p); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *c {
		t.Fatalf("round trip: got %+v want %+v", got, c)
	}

	t.Setenv("NDVISTAT_CHART_FORMAT", "pdf")
	got, err = Load(p)
	if err != nil {
		t.Fatalf("Load with env: %v", err)
	}
	if got.ChartFormat != "pdf" {
		t.Fatalf("env should override file, got %q", got.ChartFormat)
	}
}

func TestLoad_Malformed(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(p, []byte("charts: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}

func TestSave_DefaultLocation(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := Save(&Global{OutputDir: "x"}, ""); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".ndvistat", "config.yaml")); err != nil {
		t.Fatalf("config not written: %v", err)
	}
}
