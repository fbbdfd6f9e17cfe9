package evo

import (
	"io"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

func smallConfig(popSize int) *Config {
	return &Config{
		Population: PopulationConfig{
			PopSize:           popSize,
			MutationScale:     0.1,
			ReinitFraction:    0.2,
			DecisionThreshold: 0.5,
		},
		Network: NetworkConfig{
			LayerSizes:       []int{5, 6, 1},
			LayerActivations: []string{"LINEAR", "RELU", "SIGMOID"},
		},
	}
}

func newTestPopulation(t *testing.T, popSize int, seed int64) *Population {
	t.Helper()
	pop, err := NewPopulation(smallConfig(popSize), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	pop.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return pop
}

// withinEnvelope reports whether child could come from parent through the
// mutation operator with a magnitude below scale.
func withinEnvelope(parent, child, scale float64) bool {
	if child == nn.MutationFloor {
		return true
	}
	d := child - parent
	if d < 0 {
		d = -d
	}
	return d <= scale
}

func TestRankStableOnTies(t *testing.T) {
	agents := []*Agent{
		{ID: 0, Fitness: 3},
		{ID: 1, Fitness: 7},
		{ID: 2, Fitness: 3},
		{ID: 3, Fitness: 7},
		{ID: 4, Fitness: 1},
	}
	ranked := Rank(agents)

	ids := make([]int, len(ranked))
	for i, a := range ranked {
		ids[i] = a.ID
	}
	assert.Equal(t, []int{1, 3, 0, 2, 4}, ids)
	// Input order is untouched.
	assert.Equal(t, 0, agents[0].ID)
}

func TestTierSizes(t *testing.T) {
	r := NewReproduction(&PopulationConfig{ReinitFraction: 0.2}, rand.New(rand.NewSource(1)))

	cases := []struct{ n, elite, reinit int }{
		{1, 0, 0},
		{2, 1, 0},
		{3, 1, 1},
		{10, 7, 2},
		{1000, 799, 200},
	}
	for _, c := range cases {
		elite, reinit := r.TierSizes(c.n)
		assert.Equal(t, c.elite, elite, "elite for n=%d", c.n)
		assert.Equal(t, c.reinit, reinit, "reinit for n=%d", c.n)
		if c.n > 0 {
			assert.Equal(t, c.n-1, elite+reinit)
		}
	}

	all := NewReproduction(&PopulationConfig{ReinitFraction: 1}, rand.New(rand.NewSource(1)))
	elite, reinit := all.TierSizes(4)
	assert.Equal(t, 0, elite)
	assert.Equal(t, 3, reinit)
}

func TestReproduceKeepsChampionUntouched(t *testing.T) {
	pop := newTestPopulation(t, 10, 5)
	for i, a := range pop.Agents {
		a.Fitness = float64((i * 7) % 10)
	}
	leader := pop.Leader()
	snapshot := leader.Network.Clone()

	_, err := pop.Reproduce()
	require.NoError(t, err)
	assert.True(t, leader.Network.Equal(snapshot))
	assert.Equal(t, leader.ID, pop.Last.BestAgentID)
}

func TestReproduceTiers(t *testing.T) {
	pop := newTestPopulation(t, 10, 8)
	// Agent i gets fitness 10-i: agent 0 is the champion, agents 8 and 9 are the worst.
	for i, a := range pop.Agents {
		a.Fitness = float64(10 - i)
	}
	champion := pop.Agents[0].Network.Clone().Parameters()

	stats, err := pop.Reproduce()
	require.NoError(t, err)
	assert.Equal(t, 7, stats.Elite)
	assert.Equal(t, 2, stats.Reinit)

	for i := 1; i <= 7; i++ {
		params := pop.Agents[i].Network.Parameters()
		for k, v := range params {
			require.True(t, withinEnvelope(champion[k], v, 0.1),
				"elite agent %d param %d = %f not derived from %f", i, k, v, champion[k])
		}
	}

	for i := 8; i <= 9; i++ {
		params := pop.Agents[i].Network.Parameters()
		derivable := true
		for k, v := range params {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
			if !withinEnvelope(champion[k], v, 0.1) {
				derivable = false
			}
		}
		assert.False(t, derivable, "reinitialized agent %d looks derived from the champion", i)
	}
}

func TestReproduceResetsState(t *testing.T) {
	pop := newTestPopulation(t, 6, 2)
	for i, a := range pop.Agents {
		a.Fitness = float64(i)
		a.Kill()
	}

	_, err := pop.Reproduce()
	require.NoError(t, err)
	require.Len(t, pop.Agents, 6)
	for i, a := range pop.Agents {
		assert.Equal(t, i, a.ID)
		assert.True(t, a.Alive)
		assert.Zero(t, a.Fitness)
	}
}

func TestReproduceEmpty(t *testing.T) {
	r := NewReproduction(&PopulationConfig{}, rand.New(rand.NewSource(1)))
	_, err := r.Reproduce(nil)
	require.Error(t, err)
}

func TestSummarizeFitness(t *testing.T) {
	s := SummarizeFitness([]*Agent{{Fitness: 2}, {Fitness: 4}, {Fitness: 6}})
	assert.Equal(t, 6.0, s.Max)
	assert.Equal(t, 2.0, s.Min)
	assert.InDelta(t, 4.0, s.Mean, 1e-12)
	assert.InDelta(t, 2.0, s.Std, 1e-12)

	one := SummarizeFitness([]*Agent{{Fitness: 3}})
	assert.Equal(t, FitnessSummary{Max: 3, Mean: 3, Min: 3}, one)

	assert.Equal(t, FitnessSummary{}, SummarizeFitness(nil))
}
