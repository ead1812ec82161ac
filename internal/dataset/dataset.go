package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Column is the header name the loader requires.
const Column = "ndvi"

// ErrMissingColumn is returned when the CSV header has no ndvi column.
var ErrMissingColumn = errors.New("missing ndvi column")

// naTokens mirrors the cell values pandas treats as missing by default.
var naTokens = map[string]bool{
	"":         true,
	"NA":       true,
	"N/A":      true,
	"n/a":      true,
	"NaN":      true,
	"nan":      true,
	"-NaN":     true,
	"-nan":     true,
	"null":     true,
	"NULL":     true,
	"None":     true,
	"#N/A":     true,
	"<NA>":     true,
	"#NA":      true,
	"1.#IND":   true,
	"-1.#IND":  true,
	"1.#QNAN":  true,
	"-1.#QNAN": true,
	"#N/A N/A": true,
}

// Reading is one ndvi cell. Valid is false for missing values.
type Reading struct {
	Value float64
	Valid bool
}

// Dataset holds the ndvi column of a CSV file in row order.
type Dataset struct {
	Name     string
	Path     string
	Readings []Reading
}

// Len returns the number of data rows.
func (d *Dataset) Len() int { return len(d.Readings) }

// Missing counts rows without an ndvi value.
func (d *Dataset) Missing() int {
	n := 0
	for _, r := range d.Readings {
		if !r.Valid {
			n++
		}
	}
	return n
}

// Values returns the non-missing values in row order.
func (d *Dataset) Values() []float64 {
	out := make([]float64, 0, len(d.Readings))
	for _, r := range d.Readings {
		if r.Valid {
			out = append(out, r.Value)
		}
	}
	return out
}

// Load reads the ndvi column of a CSV (or TSV) file.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	ds, err := Read(f, sniffDelimiter(path))
	if err != nil {
		return nil, err
	}
	ds.Name = filepath.Base(path)
	ds.Path = path
	return ds, nil
}

// Read parses CSV content with the given delimiter.
func Read(r io.Reader, delim rune) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comma = delim

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: empty file: %w", ErrMissingColumn)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := -1
	for i, h := range header {
		// Excel likes to prepend a BOM to the first header cell.
		name := strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")
		if strings.EqualFold(name, Column) {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("header %v: %w", header, ErrMissingColumn)
	}

	ds := &Dataset{}
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(ds.Readings)+1, err)
		}
		if col >= len(rec) {
			ds.Readings = append(ds.Readings, Reading{})
			continue
		}
		rd, err := parseReading(rec[col])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", len(ds.Readings)+1, err)
		}
		ds.Readings = append(ds.Readings, rd)
	}
	return ds, nil
}

func parseReading(s string) (Reading, error) {
	v := strings.TrimSpace(s)
	if naTokens[v] {
		return Reading{}, nil
	}
	x, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return Reading{}, fmt.Errorf("parse ndvi %q: %w", v, err)
	}
	// ParseFloat accepts any case of "nan"; a NaN cell is missing.
	if math.IsNaN(x) {
		return Reading{}, nil
	}
	return Reading{Value: x, Valid: true}, nil
}

// ResolveInput returns path unchanged for files. For a directory it picks the
// newest *_ndvi.csv export inside it.
func ResolveInput(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat input: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	matches, err := filepath.Glob(filepath.Join(path, "*_"+Column+".csv"))
	if err != nil {
		return "", fmt.Errorf("glob input: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no *_%s.csv files in %s", Column, path)
	}
	type cand struct {
		path string
		mod  int64
	}
	cands := make([]cand, 0, len(matches))
	for _, m := range matches {
		fi, err := os.Stat(m)
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", m, err)
		}
		cands = append(cands, cand{path: m, mod: fi.ModTime().UnixNano()})
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].mod == cands[j].mod {
			// exporter file names embed an ISO timestamp, so lexical order is time order
			return cands[i].path > cands[j].path
		}
		return cands[i].mod > cands[j].mod
	})
	return cands[0].path, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
