package evo

import (
	"fmt"
	"math"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

// Agent is one evolvable individual: a network plus the task state that
// selection looks at.
type Agent struct {
	ID      int // Position in the population, stable for the whole run
	Network *nn.Network
	Alive   bool
	Fitness float64 // Non-decreasing while alive, reset each generation
}

// Decide feeds the sensing vector to the network and reports whether the first
// output reaches threshold. The raw output is returned alongside.
func (a *Agent) Decide(inputs []float64, threshold float64) (bool, float64, error) {
	out, err := a.Network.Predict(inputs)
	if err != nil {
		return false, 0, fmt.Errorf("agent %d: %w", a.ID, err)
	}
	if len(out) == 0 {
		return false, 0, fmt.Errorf("agent %d: network produced no output", a.ID)
	}
	return out[0] >= threshold, out[0], nil
}

// Accrue adds ceil(dt*rate) to the fitness of a living agent.
// Dead agents do not accrue.
func (a *Agent) Accrue(dt, rate float64) {
	if !a.Alive {
		return
	}
	if gain := math.Ceil(dt * rate); gain > 0 {
		a.Fitness += gain
	}
}

// Kill marks the agent dead until the next generation reset.
func (a *Agent) Kill() {
	a.Alive = false
}

// reset prepares the agent for a new generation.
func (a *Agent) reset() {
	a.Alive = true
	a.Fitness = 0
}
