package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoad_ReadsColumnAndMissing(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "points_ndvi.csv",
		"latitude,longitude,NDVI,acq_date\n"+
			"10.1,20.2,0.45,2024-11-01\n"+
			"10.2,20.3,,2024-11-01\n"+
			"10.3,20.4,NaN,2024-11-02\n"+
			"10.4,20.5,-0.12,2024-11-02\n"+
			"10.5,20.6\n")

	ds, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Name != "points_ndvi.csv" {
		t.Fatalf("unexpected name %q", ds.Name)
	}
	if ds.Len() != 5 {
		t.Fatalf("expected 5 rows, got %d", ds.Len())
	}
	if ds.Missing() != 3 {
		t.Fatalf("expected 3 missing, got %d", ds.Missing())
	}
	vals := ds.Values()
	if len(vals) != 2 || vals[0] != 0.45 || vals[1] != -0.12 {
		t.Fatalf("unexpected values %v", vals)
	}
	if ds.Missing()+len(vals) != ds.Len() {
		t.Fatalf("missing + present != rows")
	}
}

func TestLoad_NaNSpellingsAreMissing(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "spellings_ndvi.csv",
		"ndvi\n0.2\nNAN\nNan\n-1.#QNAN\n1.#QNAN\n-1.#IND\n#N/A N/A\n0.4\n")

	ds, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ds.Len() != 8 || ds.Missing() != 6 {
		t.Fatalf("expected 6 of 8 missing, got %d of %d", ds.Missing(), ds.Len())
	}
	for _, v := range ds.Values() {
		if v != v {
			t.Fatalf("NaN leaked into values %v", ds.Values())
		}
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.csv", "lat,lon\n1,2\n")
	_, err := Load(p)
	if !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn, got %v", err)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "empty.csv", "")
	if _, err := Load(p); !errors.Is(err, ErrMissingColumn) {
		t.Fatalf("expected ErrMissingColumn for empty file, got %v", err)
	}
}

func TestLoad_NotExist(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.csv")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoad_ParseError(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "bad.csv", "ndvi\n0.1\nabc\n")
	_, err := Load(p)
	if err == nil || !strings.Contains(err.Error(), "row 2") {
		t.Fatalf("expected parse error on row 2, got %v", err)
	}
}

func TestRead_TabAndBOM(t *testing.T) {
	ds, err := Read(strings.NewReader("\ufeffndvi\tid\n0.5\t1\n0.7\t2\n"), '\t')
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := ds.Values(); len(got) != 2 || got[1] != 0.7 {
		t.Fatalf("unexpected values %v", got)
	}
}

func TestResolveInput(t *testing.T) {
	dir := t.TempDir()
	old := writeFile(t, dir, "firms_data_2024-11-01T00:00:00.000Z_ndvi.csv", "ndvi\n0.1\n")
	newer := writeFile(t, dir, "firms_data_2024-11-02T11:05:09.897Z_ndvi.csv", "ndvi\n0.2\n")
	writeFile(t, dir, "firms_data_2024-11-03.csv", "ndvi\n0.3\n")
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(old, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	got, err := ResolveInput(dir)
	if err != nil {
		t.Fatalf("ResolveInput: %v", err)
	}
	if got != newer {
		t.Fatalf("expected %s, got %s", newer, got)
	}
	same, err := ResolveInput(old)
	if err != nil || same != old {
		t.Fatalf("file input should pass through, got %q %v", same, err)
	}
	if _, err := ResolveInput(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory without exports")
	}
}
