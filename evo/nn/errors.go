package nn

import "fmt"

// ConfigError reports an invalid network or run configuration: an empty layer list,
// a non-positive layer size, an unknown activation name, or an out-of-range value.
// It is raised at build/load time and aborts construction.
type ConfigError struct {
	Field  string // Offending key or layer descriptor, e.g. "layers[1].activation"
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config error: " + e.Reason
	}
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// ShapeError reports an input vector whose length does not match the width a
// neuron or layer expects.
type ShapeError struct {
	Where string // "neuron", "layer 2", "network input"
	Want  int
	Got   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("shape error: %s expects %d inputs, got %d", e.Where, e.Want, e.Got)
}
