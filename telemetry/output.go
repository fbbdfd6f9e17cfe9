package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/baldhumanity/evo-runner/evo"
)

// OutputManager writes a run's output files under <root>/<run id>/.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir             string
	runID           string
	generationsFile *os.File

	generationsHeaderWritten bool
}

// NewOutputManager creates the run directory and opens generations.csv.
// Returns nil if root is empty (output disabled).
func NewOutputManager(root, runID string) (*OutputManager, error) {
	if root == "" {
		return nil, nil
	}
	if runID == "" {
		runID = NewRunID()
	}

	dir := filepath.Join(root, runID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}

	return &OutputManager{dir: dir, runID: runID, generationsFile: f}, nil
}

// WriteManifest saves the run manifest as run.yaml.
func (om *OutputManager) WriteManifest(m Manifest) error {
	if om == nil {
		return nil
	}
	if m.RunID == "" {
		m.RunID = om.runID
	}
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "run.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing run.yaml: %w", err)
	}
	return nil
}

// WriteGeneration appends one generation's stats to generations.csv.
func (om *OutputManager) WriteGeneration(s evo.GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationRecord{NewGenerationRecord(om.runID, s)}

	if !om.generationsHeaderWritten {
		if err := gocsv.Marshal(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.generationsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.generationsFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}
	return nil
}

// Dir returns the run output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// RunID returns the identifier the output is filed under.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// Close closes the output files.
func (om *OutputManager) Close() error {
	if om == nil || om.generationsFile == nil {
		return nil
	}
	return om.generationsFile.Close()
}

// ReadGenerations loads every row of a generations.csv file.
func ReadGenerations(path string) ([]GenerationRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []GenerationRecord
	if err := gocsv.UnmarshalFile(f, &records); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return records, nil
}
