package evo

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

// Reproduction turns a finished generation into the next one in place.
type Reproduction struct {
	Config *PopulationConfig
	rng    *rand.Rand
}

// ReproductionResult reports what a reproduction step did.
type ReproductionResult struct {
	Best   *Agent // champion, carried forward untouched
	Elite  int    // agents re-derived from the champion by mutation
	Reinit int    // agents given fresh random parameters
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(config *PopulationConfig, rng *rand.Rand) *Reproduction {
	return &Reproduction{Config: config, rng: rng}
}

// CreateNewPopulation creates popSize agents with independently randomized
// networks of the given topology.
func (r *Reproduction) CreateNewPopulation(layers []nn.LayerConfig, popSize int) ([]*Agent, error) {
	agents := make([]*Agent, popSize)
	for i := range agents {
		net, err := nn.NewNetwork(layers, r.rng)
		if err != nil {
			return nil, fmt.Errorf("failed to build network for agent %d: %w", i, err)
		}
		agents[i] = &Agent{ID: i, Network: net, Alive: true}
	}
	return agents, nil
}

// Rank returns the agents ordered by fitness, best first. Ties keep population order.
// The input slice is not reordered.
func Rank(agents []*Agent) []*Agent {
	ranked := make([]*Agent, len(agents))
	copy(ranked, agents)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Fitness > ranked[j].Fitness
	})
	return ranked
}

// TierSizes splits the n-1 non-champion ranks into the elite-mutation tier and
// the reinitialization tier. The reinitialization tier takes the worst
// round(n*ReinitFraction) ranks, never including the champion.
func (r *Reproduction) TierSizes(n int) (elite, reinit int) {
	if n <= 1 {
		return 0, 0
	}
	reinit = int(math.Round(float64(n) * r.Config.ReinitFraction))
	if reinit > n-1 {
		reinit = n - 1
	}
	return n - 1 - reinit, reinit
}

// Reproduce ranks the agents, keeps the champion's network untouched,
// re-derives the elite tier from the champion and reinitializes the rest.
// Every agent is then revived with zero fitness. The agents slice keeps its
// order and length.
func (r *Reproduction) Reproduce(agents []*Agent) (ReproductionResult, error) {
	if len(agents) == 0 {
		return ReproductionResult{}, fmt.Errorf("cannot reproduce an empty population")
	}

	ranked := Rank(agents)
	best := ranked[0]
	elite, reinit := r.TierSizes(len(ranked))

	for rank := 1; rank < len(ranked); rank++ {
		a := ranked[rank]
		if rank <= elite {
			if err := a.Network.MutateFrom(best.Network, r.Config.MutationScale, r.rng); err != nil {
				return ReproductionResult{}, fmt.Errorf("failed to mutate agent %d from champion %d: %w", a.ID, best.ID, err)
			}
		} else {
			a.Network.Randomize(r.rng)
		}
	}

	for _, a := range agents {
		a.reset()
	}

	return ReproductionResult{Best: best, Elite: elite, Reinit: reinit}, nil
}
