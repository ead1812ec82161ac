package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/ndvistat/internal/utils"
)

const manifestFileName = "run.json"

// Manifest records one report run and the files it wrote.
type Manifest struct {
	ID        string     `json:"id"`
	Input     string     `json:"input"`
	Rows      int        `json:"rows"`
	Missing   int        `json:"missing"`
	Outliers  int        `json:"outliers"`
	Boundary  string     `json:"boundary"`
	Artifacts []Artifact `json:"artifacts"`
	CreatedAt time.Time  `json:"created_at"`

	// Not serialized: directory holding run.json and the artifacts
	rootDir string `json:"-"`
}

// Artifact is one file written by a run.
type Artifact struct {
	Kind string `json:"kind"`
	Path string `json:"path"`
}

// NewManifest starts a manifest for a report written under dir.
func NewManifest(dir, input string, r *Report) *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Input:     input,
		Rows:      r.Rows,
		Missing:   r.Summary.Missing,
		Outliers:  r.Outliers.Count,
		Boundary:  r.Boundary.String(),
		CreatedAt: time.Now(),
		rootDir:   dir,
	}
}

// LoadManifest reads run.json from dir.
func LoadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, manifestFileName)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	m.rootDir = dir
	return &m, nil
}

// RootDir returns the output directory of the run.
func (m *Manifest) RootDir() string { return m.rootDir }

// Add records a written file. Paths inside the run directory are stored
// relative to it; anything else is stored absolute.
func (m *Manifest) Add(kind, path string) {
	if rel, err := filepath.Rel(m.rootDir, path); err == nil && !escapes(rel) {
		path = rel
	} else if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	m.Artifacts = append(m.Artifacts, Artifact{Kind: kind, Path: path})
}

// Save writes run.json using atomic write.
func (m *Manifest) Save() error {
	if m.rootDir == "" {
		return errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(m.rootDir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	data, err := utils.PrettyJSON(m)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(filepath.Join(m.rootDir, manifestFileName), data)
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
