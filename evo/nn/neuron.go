package nn

import (
	"fmt"
	"math/rand"
)

// MutationFloor is the smallest value the mutation operator can produce.
const MutationFloor = 0.01

// Neuron is a single weighted-sum unit followed by an activation function.
// The number of weights is fixed at construction; only their values change.
type Neuron struct {
	Weights    []float64
	Bias       float64
	Activation Activation
}

// NewNeuron creates a neuron with inputWidth weights and a bias, all drawn
// uniformly from [0,1).
func NewNeuron(inputWidth int, activation Activation, rng *rand.Rand) (*Neuron, error) {
	if inputWidth <= 0 {
		return nil, &ConfigError{Field: "neuron", Reason: fmt.Sprintf("input width must be positive, got %d", inputWidth)}
	}
	if _, err := activation.Func(); err != nil {
		return nil, err
	}
	n := &Neuron{
		Weights:    make([]float64, inputWidth),
		Activation: activation,
	}
	n.Randomize(rng)
	return n, nil
}

// Activate returns activation(sum(weights[i]*inputs[i]) + bias). The function
// is resolved from n.Activation on every call.
func (n *Neuron) Activate(inputs []float64) (float64, error) {
	if len(inputs) != len(n.Weights) {
		return 0, &ShapeError{Where: "neuron", Want: len(n.Weights), Got: len(inputs)}
	}
	fn, err := n.Activation.Func()
	if err != nil {
		return 0, err
	}
	sum := n.Bias
	for i, w := range n.Weights {
		sum += w * inputs[i]
	}
	return fn(sum), nil
}

// Randomize overwrites every weight and the bias with fresh uniform values in [0,1).
func (n *Neuron) Randomize(rng *rand.Rand) {
	for i := range n.Weights {
		n.Weights[i] = rng.Float64()
	}
	n.Bias = rng.Float64()
}

// MutateFrom overwrites the neuron's parameters with mutated copies of src's
// parameters. Each weight and the bias get an independent magnitude drawn from
// [0, scale). src must have the same input width.
func (n *Neuron) MutateFrom(src *Neuron, scale float64, rng *rand.Rand) error {
	if len(src.Weights) != len(n.Weights) {
		return &ShapeError{Where: "neuron", Want: len(n.Weights), Got: len(src.Weights)}
	}
	for i, w := range src.Weights {
		n.Weights[i] = Mutate(w, rng.Float64()*scale, rng)
	}
	n.Bias = Mutate(src.Bias, rng.Float64()*scale, rng)
	return nil
}

// Copy creates a deep copy of the neuron.
func (n *Neuron) Copy() *Neuron {
	weights := make([]float64, len(n.Weights))
	copy(weights, n.Weights)
	return &Neuron{
		Weights:    weights,
		Bias:       n.Bias,
		Activation: n.Activation,
	}
}

// Mutate moves value by magnitude in a random direction and clamps the result
// to MutationFloor. It is the only mutation operator used during reproduction.
func Mutate(value, magnitude float64, rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		value -= magnitude
	} else {
		value += magnitude
	}
	if value < MutationFloor {
		return MutationFloor
	}
	return value
}
