package nn

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNeuronInitialization(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	n, err := NewNeuron(4, Sigmoid, rng)
	require.NoError(t, err)
	require.Len(t, n.Weights, 4)

	for _, w := range n.Weights {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.Less(t, w, 1.0)
	}
	assert.GreaterOrEqual(t, n.Bias, 0.0)
	assert.Less(t, n.Bias, 1.0)
}

func TestNewNeuronRejectsBadWidth(t *testing.T) {
	_, err := NewNeuron(0, Linear, rand.New(rand.NewSource(1)))
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestNeuronActivate(t *testing.T) {
	n, err := NewNeuron(3, Linear, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	n.Weights = []float64{1, 2, 3}
	n.Bias = 0.5

	got, err := n.Activate([]float64{1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 6.5, got, 1e-12)
}

func TestNeuronActivateFollowsActivationField(t *testing.T) {
	n, err := NewNeuron(1, Linear, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	n.Weights = []float64{1}
	n.Bias = 0

	n.Activation = Sigmoid
	got, err := n.Activate([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 0.8808, got, 1e-4)

	literal := &Neuron{Weights: []float64{1, 1}, Bias: 1, Activation: Tanh}
	got, err = literal.Activate([]float64{-1, -1})
	require.NoError(t, err)
	assert.InDelta(t, math.Tanh(-1), got, 1e-12)

	literal.Activation = Softmax
	_, err = literal.Activate([]float64{0, 0})
	var cerr *ConfigError
	require.ErrorAs(t, err, &cerr)
}

func TestNeuronActivateShapeMismatch(t *testing.T) {
	n, err := NewNeuron(3, Linear, rand.New(rand.NewSource(1)))
	require.NoError(t, err)

	_, err = n.Activate([]float64{1, 2})
	var serr *ShapeError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 3, serr.Want)
	assert.Equal(t, 2, serr.Got)
}

func TestMutateFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		value := rng.Float64()*2 - 1
		magnitude := rng.Float64() * 100
		assert.GreaterOrEqual(t, Mutate(value, magnitude, rng), MutationFloor)
	}
}

func TestMutateMovesByMagnitude(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	sawUp, sawDown := false, false
	for i := 0; i < 200; i++ {
		got := Mutate(0.5, 0.1, rng)
		require.NotEqual(t, 0.5, got)
		switch {
		case got > 0.5:
			assert.InDelta(t, 0.6, got, 1e-12)
			sawUp = true
		default:
			assert.InDelta(t, 0.4, got, 1e-12)
			sawDown = true
		}
	}
	assert.True(t, sawUp, "expected some upward mutations")
	assert.True(t, sawDown, "expected some downward mutations")
}

func TestNeuronMutateFromStaysNearSource(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	src, err := NewNeuron(5, ReLU, rng)
	require.NoError(t, err)
	dst, err := NewNeuron(5, ReLU, rng)
	require.NoError(t, err)

	require.NoError(t, dst.MutateFrom(src, 0.1, rng))
	for i, w := range dst.Weights {
		if w != MutationFloor {
			assert.InDelta(t, src.Weights[i], w, 0.1)
		}
	}
	if dst.Bias != MutationFloor {
		assert.InDelta(t, src.Bias, dst.Bias, 0.1)
	}

	other, err := NewNeuron(2, ReLU, rng)
	require.NoError(t, err)
	var serr *ShapeError
	require.ErrorAs(t, dst.MutateFrom(other, 0.1, rng), &serr)
}

func TestNeuronCopyIsDeep(t *testing.T) {
	n, err := NewNeuron(2, Tanh, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	c := n.Copy()
	c.Weights[0] = 42

	assert.NotEqual(t, 42.0, n.Weights[0])
	got, err := c.Activate([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, TanhFunc(c.Bias), got, 1e-12)
}
