// Package telemetry writes per-generation run output: a CSV of generation
// statistics and a YAML manifest describing the run.
package telemetry

import (
	"time"

	"github.com/google/uuid"

	"github.com/baldhumanity/evo-runner/evo"
	"github.com/baldhumanity/evo-runner/runner"
)

// GenerationRecord is one row of generations.csv.
type GenerationRecord struct {
	RunID       string  `csv:"run_id"`
	Generation  int     `csv:"generation"`
	Ticks       int     `csv:"ticks"`
	DurationMS  float64 `csv:"duration_ms"`
	BestAgent   int     `csv:"best_agent"`
	Best        float64 `csv:"best"`
	Mean        float64 `csv:"mean"`
	Std         float64 `csv:"std"`
	Min         float64 `csv:"min"`
	AllTimeBest float64 `csv:"all_time_best"`
	Elite       int     `csv:"elite"`
	Reinit      int     `csv:"reinit"`
}

// NewGenerationRecord converts generation stats to a CSV row.
func NewGenerationRecord(runID string, s evo.GenerationStats) GenerationRecord {
	return GenerationRecord{
		RunID:       runID,
		Generation:  s.Generation,
		Ticks:       s.Ticks,
		DurationMS:  float64(s.Duration) / float64(time.Millisecond),
		BestAgent:   s.BestAgentID,
		Best:        s.BestFitness,
		Mean:        s.MeanFitness,
		Std:         s.StdFitness,
		Min:         s.MinFitness,
		AllTimeBest: s.AllTimeBest,
		Elite:       s.Elite,
		Reinit:      s.Reinit,
	}
}

// Manifest describes a run. It is written once as run.yaml.
type Manifest struct {
	RunID     string         `yaml:"run_id"`
	Seed      int64          `yaml:"seed"`
	StartedAt time.Time      `yaml:"started_at"`
	Evolution *evo.Config    `yaml:"evolution"`
	Runner    *runner.Config `yaml:"runner"`
}

// NewRunID returns a fresh random run identifier.
func NewRunID() string {
	return uuid.NewString()
}
