package evo

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

//go:embed defaults.ini
var defaultsINI []byte

// Config stores the configuration parameters for an evolution run.
type Config struct {
	Population PopulationConfig `yaml:"population"`
	Network    NetworkConfig    `yaml:"network"`
}

// PopulationConfig holds parameters of the population and its reproduction step.
type PopulationConfig struct {
	PopSize           int     `ini:"pop_size" yaml:"pop_size"`
	MutationScale     float64 `ini:"mutation_scale" yaml:"mutation_scale"`
	ReinitFraction    float64 `ini:"reinit_fraction" yaml:"reinit_fraction"`
	DecisionThreshold float64 `ini:"decision_threshold" yaml:"decision_threshold"`
	Seed              int64   `ini:"seed" yaml:"seed"` // 0 = time based
}

// NetworkConfig holds the layer layout shared by every agent's network.
type NetworkConfig struct {
	LayerSizes       []int    `ini:"layer_sizes" delim:" " yaml:"layer_sizes"`
	LayerActivations []string `ini:"layer_activations" delim:" " yaml:"layer_activations"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

// LoadConfig loads configuration from an INI file layered over the built-in defaults.
// An empty path loads the defaults only.
func LoadConfig(filePath string) (*Config, error) {
	sources := []interface{}{}
	if filePath != "" {
		sources = append(sources, filePath)
	}
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, defaultsINI, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := &Config{}
	if err := file.Section("Population").MapTo(&config.Population); err != nil {
		return nil, fmt.Errorf("failed to map [Population] section: %w", err)
	}
	if err := file.Section("Network").MapTo(&config.Network); err != nil {
		return nil, fmt.Errorf("failed to map [Network] section: %w", err)
	}

	for i, name := range config.Network.LayerActivations {
		config.Network.LayerActivations[i] = strings.TrimSpace(name)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges and the network layout.
func (c *Config) Validate() error {
	p := c.Population
	if p.PopSize <= 0 {
		return &nn.ConfigError{Field: "pop_size", Reason: "must be positive"}
	}
	if p.MutationScale < 0 {
		return &nn.ConfigError{Field: "mutation_scale", Reason: "cannot be negative"}
	}
	if p.ReinitFraction < 0 || p.ReinitFraction > 1 {
		return &nn.ConfigError{Field: "reinit_fraction", Reason: "must be between 0 and 1"}
	}
	if p.DecisionThreshold < 0 || p.DecisionThreshold > 1 {
		return &nn.ConfigError{Field: "decision_threshold", Reason: "must be between 0 and 1"}
	}
	_, err := c.Network.Layers()
	return err
}

// Layers pairs layer sizes with activation names.
func (nc NetworkConfig) Layers() ([]nn.LayerConfig, error) {
	if len(nc.LayerSizes) == 0 {
		return nil, &nn.ConfigError{Field: "layer_sizes", Reason: "at least one layer is required"}
	}
	if len(nc.LayerSizes) != len(nc.LayerActivations) {
		return nil, &nn.ConfigError{
			Field:  "layer_activations",
			Reason: fmt.Sprintf("expected %d names to match layer_sizes, got %d", len(nc.LayerSizes), len(nc.LayerActivations)),
		}
	}
	layers := make([]nn.LayerConfig, len(nc.LayerSizes))
	for i, size := range nc.LayerSizes {
		if size <= 0 {
			return nil, &nn.ConfigError{Field: fmt.Sprintf("layer_sizes[%d]", i), Reason: "must be positive"}
		}
		act, err := nn.ParseActivation(nc.LayerActivations[i])
		if err != nil {
			return nil, &nn.ConfigError{Field: fmt.Sprintf("layer_activations[%d]", i), Reason: "unknown activation function: " + nc.LayerActivations[i]}
		}
		if _, err := act.Func(); err != nil {
			return nil, &nn.ConfigError{Field: fmt.Sprintf("layer_activations[%d]", i), Reason: act.String() + " cannot be used as a neuron activation"}
		}
		layers[i] = nn.LayerConfig{Size: size, Activation: act.String()}
	}
	return layers, nil
}
