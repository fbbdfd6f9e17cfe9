package nn

import (
	"fmt"
	"math/rand"
)

// Layer is an ordered group of neurons sharing an input width and activation.
// Neuron order defines the order of the layer's output vector.
type Layer struct {
	Neurons  []*Neuron
	IsOutput bool // informational only
	// isInput marks the first layer of a network, whose neuron i reads only input component i.
	isInput bool
}

// NewLayer builds size neurons, each with inputWidth weights.
func NewLayer(size, inputWidth int, isOutput bool, activation Activation, rng *rand.Rand) (*Layer, error) {
	if size <= 0 {
		return nil, &ConfigError{Field: "layer", Reason: fmt.Sprintf("size must be positive, got %d", size)}
	}
	l := &Layer{
		Neurons:  make([]*Neuron, size),
		IsOutput: isOutput,
	}
	for i := range l.Neurons {
		n, err := NewNeuron(inputWidth, activation, rng)
		if err != nil {
			return nil, err
		}
		l.Neurons[i] = n
	}
	return l, nil
}

// Size returns the number of neurons in the layer.
func (l *Layer) Size() int {
	return len(l.Neurons)
}

// Forward applies every neuron to the input vector and returns their outputs in neuron order.
// For the input layer, neuron i is fed the one-element slice inputs[i:i+1].
func (l *Layer) Forward(inputs []float64) ([]float64, error) {
	outputs := make([]float64, len(l.Neurons))
	if l.isInput {
		if len(inputs) != len(l.Neurons) {
			return nil, &ShapeError{Where: "input layer", Want: len(l.Neurons), Got: len(inputs)}
		}
		for i, n := range l.Neurons {
			v, err := n.Activate(inputs[i : i+1])
			if err != nil {
				return nil, err
			}
			outputs[i] = v
		}
		return outputs, nil
	}

	for i, n := range l.Neurons {
		v, err := n.Activate(inputs)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	return outputs, nil
}

// Copy creates a deep copy of the layer.
func (l *Layer) Copy() *Layer {
	c := &Layer{
		Neurons:  make([]*Neuron, len(l.Neurons)),
		IsOutput: l.IsOutput,
		isInput:  l.isInput,
	}
	for i, n := range l.Neurons {
		c.Neurons[i] = n.Copy()
	}
	return c
}
