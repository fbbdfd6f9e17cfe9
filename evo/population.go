package evo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

// StepFunc advances one living agent by one tick. It may kill the agent or
// add to its fitness, and must not touch any other agent.
type StepFunc func(a *Agent) error

// Population holds a fixed set of agents and the generation state machine:
// it is running while any agent is alive and reproduces in place on extinction.
type Population struct {
	Config       *Config
	Agents       []*Agent
	Reproduction *Reproduction
	Generation   int // Generation currently being evaluated, starting at 1
	Ticks        int // Ticks elapsed in the current generation
	BestFitness  float64
	Last         *GenerationStats // Summary of the previous generation, nil before the first reproduction
	Logger       *slog.Logger

	genStart time.Time
}

// NewPopulation creates a population of Config.Population.PopSize agents, each
// with an independently randomized network of the configured topology.
// A nil rng is seeded from Config.Population.Seed, or the clock when that is zero.
func NewPopulation(config *Config, rng *rand.Rand) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	layers, err := config.Network.Layers()
	if err != nil {
		return nil, err
	}
	if rng == nil {
		seed := config.Population.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	reproduction := NewReproduction(&config.Population, rng)
	agents, err := reproduction.CreateNewPopulation(layers, config.Population.PopSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial population: %w", err)
	}

	return &Population{
		Config:       config,
		Agents:       agents,
		Reproduction: reproduction,
		Generation:   1,
		Logger:       slog.Default(),
		genStart:     time.Now(),
	}, nil
}

// InputSize is the sensing vector length every agent's network expects.
func (p *Population) InputSize() int {
	if len(p.Agents) == 0 {
		return 0
	}
	return p.Agents[0].Network.InputSize()
}

// Alive counts living agents.
func (p *Population) Alive() int {
	n := 0
	for _, a := range p.Agents {
		if a.Alive {
			n++
		}
	}
	return n
}

// Extinct reports whether no agent is alive.
func (p *Population) Extinct() bool {
	return p.Alive() == 0
}

// Leader returns the agent with the highest fitness this generation, the
// earliest one on ties.
func (p *Population) Leader() *Agent {
	var best *Agent
	for _, a := range p.Agents {
		if best == nil || a.Fitness > best.Fitness {
			best = a
		}
	}
	return best
}

// Tick runs step once for every living agent, in population order. If the
// population is extinct afterwards it is reproduced before Tick returns, so the
// next tick always starts with a fresh generation. A population found extinct
// on entry (agents killed outside a tick) is reproduced before any step runs.
// The returned flag reports whether a reproduction took place.
func (p *Population) Tick(step StepFunc) (bool, error) {
	if p.Extinct() {
		if _, err := p.Reproduce(); err != nil {
			return false, err
		}
		return true, nil
	}

	p.Ticks++
	for _, a := range p.Agents {
		if !a.Alive {
			continue
		}
		if err := step(a); err != nil {
			return false, fmt.Errorf("tick %d of generation %d: %w", p.Ticks, p.Generation, err)
		}
	}

	if !p.Extinct() {
		return false, nil
	}
	if _, err := p.Reproduce(); err != nil {
		return false, err
	}
	return true, nil
}

// Reproduce closes the current generation: it records its statistics, runs
// selection and mutation, and starts the next generation with every agent alive.
func (p *Population) Reproduce() (GenerationStats, error) {
	summary := SummarizeFitness(p.Agents)
	if summary.Max > p.BestFitness {
		p.BestFitness = summary.Max
	}

	result, err := p.Reproduction.Reproduce(p.Agents)
	if err != nil {
		return GenerationStats{}, fmt.Errorf("reproduction failed in generation %d: %w", p.Generation, err)
	}

	stats := GenerationStats{
		Generation:  p.Generation,
		Ticks:       p.Ticks,
		Duration:    time.Since(p.genStart),
		BestAgentID: result.Best.ID,
		BestFitness: summary.Max,
		MeanFitness: summary.Mean,
		StdFitness:  summary.Std,
		MinFitness:  summary.Min,
		AllTimeBest: p.BestFitness,
		Elite:       result.Elite,
		Reinit:      result.Reinit,
	}
	p.Last = &stats
	p.Logger.Info("generation finished", "stats", stats)

	p.Generation++
	p.Ticks = 0
	p.genStart = time.Now()
	return stats, nil
}

// NetworkLayers returns the topology shared by every agent.
func (p *Population) NetworkLayers() []nn.LayerConfig {
	if len(p.Agents) == 0 {
		return nil
	}
	return p.Agents[0].Network.Config
}
