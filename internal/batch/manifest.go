package batch

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NamanBalaji/fman/internal/errors"
	"github.com/NamanBalaji/fman/internal/ordering"
	"github.com/NamanBalaji/fman/internal/sorter"
)

var (
	ErrEmptyManifest   = errors.New("manifest lists no jobs")
	ErrDuplicateOutput = errors.New("output path used by more than one job")
)

// Manifest is the YAML document accepted by `fman batch`.
type Manifest struct {
	Jobs []ManifestJob `yaml:"jobs"`

	dir string
}

// ManifestJob describes one sort. Zero values take the caller's defaults.
type ManifestJob struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	Order      string `yaml:"order,omitempty"`
	Numeric    bool   `yaml:"numeric,omitempty"`
	Reverse    bool   `yaml:"reverse,omitempty"`
	ChunkLines int    `yaml:"chunkLines,omitempty"`
	TempDir    string `yaml:"tempDir,omitempty"`
}

// Defaults fill in what a manifest entry leaves out.
type Defaults struct {
	ChunkLines    int
	TempDir       string
	MaxOpenChunks int
}

// LoadManifest reads a manifest. Relative paths inside it are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(err, errors.PhaseValidate, path)
	}

	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, errors.NewConfigError(fmt.Errorf("parse manifest: %w", err), path)
	}
	if len(m.Jobs) == 0 {
		return nil, errors.NewConfigError(ErrEmptyManifest, path)
	}

	m.dir = filepath.Dir(path)
	return &m, nil
}

func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.dir == "" {
		return p
	}
	return filepath.Join(m.dir, p)
}

// SortJobs converts the manifest into sorter jobs. Two jobs writing the same
// output are rejected before anything runs.
func (m *Manifest) SortJobs(def Defaults) ([]sorter.Job, error) {
	jobs := make([]sorter.Job, 0, len(m.Jobs))
	outputs := make(map[string]int, len(m.Jobs))

	for i, mj := range m.Jobs {
		output := m.resolve(mj.Output)
		if output != "" {
			key := filepath.Clean(output)
			if prev, ok := outputs[key]; ok {
				return nil, errors.NewConfigError(
					fmt.Errorf("%w: jobs %d and %d write %s", ErrDuplicateOutput, prev, i, output), output)
			}
			outputs[key] = i
		}

		order := mj.Order
		if mj.Numeric && order == "" {
			order = "numeric"
		}
		policy, err := ordering.PolicyByName(order)
		if err != nil {
			return nil, errors.NewConfigError(fmt.Errorf("job %d: %w", i, err), m.resolve(mj.Input))
		}
		direction := ordering.Ascending
		if mj.Reverse {
			direction = ordering.Descending
		}

		chunkLines := mj.ChunkLines
		if chunkLines == 0 {
			chunkLines = def.ChunkLines
		}
		tempDir := mj.TempDir
		if tempDir == "" {
			tempDir = def.TempDir
		} else {
			tempDir = m.resolve(tempDir)
		}

		jobs = append(jobs, sorter.Job{
			InputPath:        m.resolve(mj.Input),
			OutputPath:       output,
			Policy:           policy,
			Direction:        direction,
			MaxLinesPerChunk: chunkLines,
			TempDir:          tempDir,
			MaxOpenChunks:    def.MaxOpenChunks,
		})
	}

	return jobs, nil
}
