package evo

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GenerationStats summarizes one finished generation.
type GenerationStats struct {
	Generation  int
	Ticks       int
	Duration    time.Duration
	BestAgentID int
	BestFitness float64
	MeanFitness float64
	StdFitness  float64
	MinFitness  float64
	AllTimeBest float64
	Elite       int // agents derived from the champion by mutation
	Reinit      int // agents given fresh random parameters
}

// FitnessSummary holds population-wide fitness statistics.
type FitnessSummary struct {
	Max, Mean, Std, Min float64
}

// SummarizeFitness computes max, mean, sample standard deviation and min of
// the agents' fitness. An empty slice yields the zero summary.
func SummarizeFitness(agents []*Agent) FitnessSummary {
	if len(agents) == 0 {
		return FitnessSummary{}
	}
	values := make([]float64, len(agents))
	for i, a := range agents {
		values[i] = a.Fitness
	}
	s := FitnessSummary{
		Max: floats.Max(values),
		Min: floats.Min(values),
	}
	if len(values) < 2 {
		s.Mean = values[0]
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(values, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("ticks", s.Ticks),
		slog.Duration("duration", s.Duration),
		slog.Int("best_agent", s.BestAgentID),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("std", s.StdFitness),
		slog.Float64("min", s.MinFitness),
		slog.Float64("all_time_best", s.AllTimeBest),
		slog.Int("elite", s.Elite),
		slog.Int("reinit", s.Reinit),
	)
}
