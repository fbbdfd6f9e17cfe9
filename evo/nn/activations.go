package nn

import (
	"math"
	"strconv"
	"strings"
)

// ActivationFunc is a pure scalar activation function.
type ActivationFunc func(x float64) float64

// Activation enumerates the activation kinds a network can be configured with.
type Activation int

const (
	Sigmoid Activation = iota
	ReLU
	LeakyReLU
	Linear
	Tanh
	// Softmax is reserved. It operates on a whole vector and cannot be attached to a neuron.
	Softmax
)

// LeakyReLUAlpha is the negative-side slope used by LeakyReLU.
const LeakyReLUAlpha = 0.01

var activationNames = map[Activation]string{
	Sigmoid:   "SIGMOID",
	ReLU:      "RELU",
	LeakyReLU: "LEAKY_RELU",
	Linear:    "LINEAR",
	Tanh:      "TANH",
	Softmax:   "SOFTMAX",
}

// String returns the configuration name of the activation.
func (a Activation) String() string {
	if name, ok := activationNames[a]; ok {
		return name
	}
	return "Activation(" + strconv.Itoa(int(a)) + ")"
}

// ParseActivation resolves a configuration name to an Activation.
// Matching is case-insensitive; underscores and dashes are optional ("leaky_relu", "LeakyReLU").
func ParseActivation(name string) (Activation, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	switch key {
	case "SIGMOID":
		return Sigmoid, nil
	case "RELU":
		return ReLU, nil
	case "LEAKYRELU":
		return LeakyReLU, nil
	case "LINEAR", "IDENTITY":
		return Linear, nil
	case "TANH":
		return Tanh, nil
	case "SOFTMAX":
		return Softmax, nil
	}
	return 0, &ConfigError{Field: "activation", Reason: "unknown activation function: " + name}
}

// Func returns the scalar function for the activation. Softmax and unknown
// kinds have no scalar form and yield a ConfigError.
func (a Activation) Func() (ActivationFunc, error) {
	switch a {
	case Sigmoid:
		return SigmoidFunc, nil
	case ReLU:
		return ReLUFunc, nil
	case LeakyReLU:
		return LeakyReLUFunc, nil
	case Linear:
		return LinearFunc, nil
	case Tanh:
		return TanhFunc, nil
	case Softmax:
		return nil, &ConfigError{Field: "activation", Reason: "SOFTMAX is vector-only and cannot be used as a neuron activation"}
	default:
		return nil, &ConfigError{Field: "activation", Reason: "unknown activation kind " + a.String()}
	}
}

// --- Scalar Activation Function Implementations ---

// SigmoidFunc is the logistic function 1 / (1 + e^-x).
func SigmoidFunc(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// LinearFunc returns its input unchanged.
func LinearFunc(x float64) float64 {
	return x
}

// TanhFunc is the hyperbolic tangent.
func TanhFunc(x float64) float64 {
	return math.Tanh(x)
}

// ReLUFunc is max(0, x).
func ReLUFunc(x float64) float64 {
	return math.Max(0, x)
}

// LeakyReLUFunc is max(alpha*x, x) with alpha = LeakyReLUAlpha.
func LeakyReLUFunc(x float64) float64 {
	return math.Max(LeakyReLUAlpha*x, x)
}

// --- Vector Functions ---

// SoftmaxVector returns e^xi / sum(e^xj) for every element of xs. The maximum is
// subtracted before exponentiation, which leaves the result unchanged but keeps
// large inputs from overflowing. An empty input yields an empty output.
func SoftmaxVector(xs []float64) []float64 {
	out := make([]float64, len(xs))
	if len(xs) == 0 {
		return out
	}
	maxVal := xs[0]
	for _, x := range xs[1:] {
		if x > maxVal {
			maxVal = x
		}
	}
	sum := 0.0
	for i, x := range xs {
		out[i] = math.Exp(x - maxVal)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
