package runner

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/baldhumanity/evo-runner/evo"
	"github.com/baldhumanity/evo-runner/evo/nn"
)

// World binds a population to the runner task. Bodies[i] belongs to the agent with ID i.
type World struct {
	Config     *Config
	Population *evo.Population
	Bodies     []Body
	Obstacle   Obstacle
	Tick       int // ticks since the run started
	Logger     *slog.Logger
}

// NewWorld creates a world for pop. The population's networks must take
// SensorCount inputs.
func NewWorld(cfg *Config, pop *evo.Population) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if got := pop.InputSize(); got != SensorCount {
		return nil, &nn.ConfigError{
			Field:  "layer_sizes[0]",
			Reason: fmt.Sprintf("input layer must have %d neurons to match the sensors, got %d", SensorCount, got),
		}
	}
	w := &World{
		Config:     cfg,
		Population: pop,
		Bodies:     make([]Body, len(pop.Agents)),
		Logger:     slog.Default(),
	}
	w.Reset()
	return w, nil
}

// Reset puts every runner and the obstacle back at their starting state.
func (w *World) Reset() {
	for i := range w.Bodies {
		w.Bodies[i] = NewBody(w.Config)
	}
	w.Obstacle = NewObstacle(w.Config)
}

// Step advances the world by dt milliseconds. Every living runner senses the
// obstacle as it stood at the start of the tick, decides, moves and is checked
// for collision; the obstacle moves afterwards. When the tick leaves no runner
// alive, the population reproduces and the world is reset. The returned flag
// reports whether that happened.
func (w *World) Step(dt float64) (bool, error) {
	obstacle := w.Obstacle
	threshold := w.Population.Config.Population.DecisionThreshold
	forceEnd := w.Config.MaxGenerationTicks > 0 && w.Population.Ticks+1 >= w.Config.MaxGenerationTicks

	reproduced, err := w.Population.Tick(func(a *evo.Agent) error {
		body := w.Bodies[a.ID]
		jump, _, err := a.Decide(Sense(body, obstacle, w.Config), threshold)
		if err != nil {
			return err
		}
		body = Integrate(body, jump, dt, w.Config)
		w.Bodies[a.ID] = body

		if Collides(body, obstacle) {
			a.Kill()
			return nil
		}
		a.Accrue(dt, w.Config.FitnessRate)
		if forceEnd {
			a.Kill()
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	w.Tick++

	if reproduced {
		w.Reset()
		return true, nil
	}
	w.Obstacle = obstacle.Advance(dt, w.Config)
	return false, nil
}

// RunOptions bounds a run. Zero values mean unlimited.
type RunOptions struct {
	MaxGenerations int
	MaxTicks       int
	// OnGeneration is called after every reproduction with the finished generation's stats.
	OnGeneration func(evo.GenerationStats) error
}

// Run steps the world with the configured fixed time step until the context is
// cancelled or one of the limits in opts is reached. Cancellation is checked
// between ticks and is not reported as an error.
func (w *World) Run(ctx context.Context, opts RunOptions) error {
	generations := 0
	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("run cancelled",
				"tick", w.Tick,
				"generation", w.Population.Generation,
				"alive", w.Population.Alive(),
				"leader_fitness", w.Population.Leader().Fitness,
			)
			return nil
		default:
		}

		reproduced, err := w.Step(w.Config.TimeStep)
		if err != nil {
			return fmt.Errorf("step %d: %w", w.Tick, err)
		}
		if reproduced {
			generations++
			if opts.OnGeneration != nil && w.Population.Last != nil {
				if err := opts.OnGeneration(*w.Population.Last); err != nil {
					return fmt.Errorf("generation %d callback: %w", w.Population.Last.Generation, err)
				}
			}
			if opts.MaxGenerations > 0 && generations >= opts.MaxGenerations {
				w.Logger.Info("generation limit reached", "generations", generations, "tick", w.Tick)
				return nil
			}
		}
		if opts.MaxTicks > 0 && w.Tick >= opts.MaxTicks {
			w.Logger.Info("tick limit reached",
				"tick", w.Tick,
				"generation", w.Population.Generation,
				"alive", w.Population.Alive(),
				"leader_fitness", w.Population.Leader().Fitness,
			)
			return nil
		}
	}
}
