package nn

import (
	"errors"
	"fmt"
	"math/rand"
)

// LayerConfig describes one layer of a network.
type LayerConfig struct {
	Size       int
	Activation string // Name resolved with ParseActivation
}

// Network is a fixed-topology feedforward network. Layer 0 is the input layer:
// its neuron i reads raw input component i. Every later layer reads the whole
// output vector of the layer before it.
type Network struct {
	Layers []*Layer
	Config []LayerConfig
}

// NewNetwork builds a randomly initialized network from a layer configuration.
func NewNetwork(config []LayerConfig, rng *rand.Rand) (*Network, error) {
	n := &Network{}
	if err := n.Build(config, rng); err != nil {
		return nil, err
	}
	return n, nil
}

// Build replaces the network's topology with freshly initialized layers built from config.
// On error the network is left unchanged.
func (n *Network) Build(config []LayerConfig, rng *rand.Rand) error {
	if len(config) == 0 {
		return &ConfigError{Field: "layers", Reason: "at least one layer is required"}
	}

	layers := make([]*Layer, len(config))
	for i, lc := range config {
		field := fmt.Sprintf("layers[%d]", i)
		if lc.Size <= 0 {
			return &ConfigError{Field: field + ".size", Reason: fmt.Sprintf("must be positive, got %d", lc.Size)}
		}
		act, err := ParseActivation(lc.Activation)
		if err != nil {
			return withField(field+".activation", err)
		}
		if _, err := act.Func(); err != nil {
			return withField(field+".activation", err)
		}

		inputWidth := 1
		if i > 0 {
			inputWidth = config[i-1].Size
		}
		layer, err := NewLayer(lc.Size, inputWidth, i == len(config)-1, act, rng)
		if err != nil {
			return fmt.Errorf("failed to build %s: %w", field, err)
		}
		layer.isInput = i == 0
		layers[i] = layer
	}

	n.Layers = layers
	n.Config = append([]LayerConfig(nil), config...)
	return nil
}

// InputSize returns the length of the vector Predict expects.
func (n *Network) InputSize() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[0].Size()
}

// OutputSize returns the length of the vector Predict produces.
func (n *Network) OutputSize() int {
	if len(n.Layers) == 0 {
		return 0
	}
	return n.Layers[len(n.Layers)-1].Size()
}

// Predict propagates inputs through every layer and returns the last layer's output.
// It has no side effects: identical weights and inputs give identical outputs.
func (n *Network) Predict(inputs []float64) ([]float64, error) {
	if len(inputs) != n.InputSize() {
		return nil, &ShapeError{Where: "network input", Want: n.InputSize(), Got: len(inputs)}
	}

	values := inputs
	for i, layer := range n.Layers {
		out, err := layer.Forward(values)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		values = out
	}
	return values, nil
}

// Randomize overwrites every weight and bias with fresh uniform values in [0,1).
func (n *Network) Randomize(rng *rand.Rand) {
	for _, layer := range n.Layers {
		for _, neuron := range layer.Neurons {
			neuron.Randomize(rng)
		}
	}
}

// MutateFrom overwrites every parameter of n with a mutated copy of the
// corresponding parameter in src. Both networks must share a topology.
func (n *Network) MutateFrom(src *Network, scale float64, rng *rand.Rand) error {
	if len(src.Layers) != len(n.Layers) {
		return &ShapeError{Where: "network layers", Want: len(n.Layers), Got: len(src.Layers)}
	}
	for i, layer := range n.Layers {
		srcLayer := src.Layers[i]
		if srcLayer.Size() != layer.Size() {
			return &ShapeError{Where: fmt.Sprintf("layer %d", i), Want: layer.Size(), Got: srcLayer.Size()}
		}
		for j, neuron := range layer.Neurons {
			if err := neuron.MutateFrom(srcLayer.Neurons[j], scale, rng); err != nil {
				return fmt.Errorf("layer %d neuron %d: %w", i, j, err)
			}
		}
	}
	return nil
}

// Parameters returns every weight followed by the bias, neuron by neuron, layer by layer.
func (n *Network) Parameters() []float64 {
	var params []float64
	for _, layer := range n.Layers {
		for _, neuron := range layer.Neurons {
			params = append(params, neuron.Weights...)
			params = append(params, neuron.Bias)
		}
	}
	return params
}

// Equal reports whether both networks have the same topology and bit-identical parameters.
func (n *Network) Equal(other *Network) bool {
	if len(n.Layers) != len(other.Layers) {
		return false
	}
	for i, layer := range n.Layers {
		ol := other.Layers[i]
		if layer.Size() != ol.Size() {
			return false
		}
		for j, neuron := range layer.Neurons {
			on := ol.Neurons[j]
			if neuron.Activation != on.Activation || neuron.Bias != on.Bias || len(neuron.Weights) != len(on.Weights) {
				return false
			}
			for k, w := range neuron.Weights {
				if w != on.Weights[k] {
					return false
				}
			}
		}
	}
	return true
}

// Clone creates a deep copy of the network.
func (n *Network) Clone() *Network {
	c := &Network{
		Layers: make([]*Layer, len(n.Layers)),
		Config: append([]LayerConfig(nil), n.Config...),
	}
	for i, layer := range n.Layers {
		c.Layers[i] = layer.Copy()
	}
	return c
}

// withField re-labels a ConfigError with the layer descriptor it came from.
func withField(field string, err error) error {
	var cerr *ConfigError
	if errors.As(err, &cerr) {
		return &ConfigError{Field: field, Reason: cerr.Reason}
	}
	return err
}
