package runner

import (
	_ "embed"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/baldhumanity/evo-runner/evo/nn"
)

//go:embed defaults.ini
var defaultsINI []byte

// Config holds the geometry and physics of the runner task.
type Config struct {
	WorldWidth           float64 `ini:"world_width" yaml:"world_width"`
	WorldHeight          float64 `ini:"world_height" yaml:"world_height"`
	GroundY              float64 `ini:"ground_y" yaml:"ground_y"`
	RunnerX              float64 `ini:"runner_x" yaml:"runner_x"`
	RunnerWidth          float64 `ini:"runner_width" yaml:"runner_width"`
	RunnerHeight         float64 `ini:"runner_height" yaml:"runner_height"`
	Gravity              float64 `ini:"gravity" yaml:"gravity"`
	JumpVelocity         float64 `ini:"jump_velocity" yaml:"jump_velocity"`
	ObstacleWidth        float64 `ini:"obstacle_width" yaml:"obstacle_width"`
	ObstacleHeight       float64 `ini:"obstacle_height" yaml:"obstacle_height"`
	ObstacleSpeed        float64 `ini:"obstacle_speed" yaml:"obstacle_speed"`
	ObstacleAcceleration float64 `ini:"obstacle_acceleration" yaml:"obstacle_acceleration"`
	ObstacleMaxSpeed     float64 `ini:"obstacle_max_speed" yaml:"obstacle_max_speed"`
	FitnessRate          float64 `ini:"fitness_rate" yaml:"fitness_rate"`
	TimeStep             float64 `ini:"time_step" yaml:"time_step"`
	MaxGenerationTicks   int     `ini:"max_generation_ticks" yaml:"max_generation_ticks"`
}

// DefaultConfig returns the built-in task configuration.
func DefaultConfig() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

// LoadConfig reads the [Runner] section of an INI file layered over the
// built-in defaults. An empty path loads the defaults only.
func LoadConfig(filePath string) (*Config, error) {
	sources := []interface{}{}
	if filePath != "" {
		sources = append(sources, filePath)
	}
	file, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, defaultsINI, sources...)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := &Config{}
	if err := file.Section("Runner").MapTo(config); err != nil {
		return nil, fmt.Errorf("failed to map [Runner] section: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks that the world is well formed.
func (c *Config) Validate() error {
	positive := []struct {
		field string
		value float64
	}{
		{"world_width", c.WorldWidth},
		{"world_height", c.WorldHeight},
		{"runner_width", c.RunnerWidth},
		{"runner_height", c.RunnerHeight},
		{"obstacle_width", c.ObstacleWidth},
		{"obstacle_height", c.ObstacleHeight},
		{"obstacle_max_speed", c.ObstacleMaxSpeed},
		{"time_step", c.TimeStep},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return &nn.ConfigError{Field: p.field, Reason: "must be positive"}
		}
	}
	if c.GroundY <= 0 || c.GroundY > c.WorldHeight {
		return &nn.ConfigError{Field: "ground_y", Reason: "must lie inside the world"}
	}
	if c.RunnerHeight > c.GroundY || c.ObstacleHeight > c.GroundY {
		return &nn.ConfigError{Field: "ground_y", Reason: "must leave room for the runner and the obstacle"}
	}
	if c.Gravity < 0 || c.JumpVelocity < 0 || c.ObstacleAcceleration < 0 || c.FitnessRate < 0 {
		return &nn.ConfigError{Field: "runner", Reason: "gravity, jump_velocity, obstacle_acceleration and fitness_rate cannot be negative"}
	}
	if c.ObstacleSpeed < 0 || c.ObstacleSpeed > c.ObstacleMaxSpeed {
		return &nn.ConfigError{Field: "obstacle_speed", Reason: "must be between 0 and obstacle_max_speed"}
	}
	if c.MaxGenerationTicks < 0 {
		return &nn.ConfigError{Field: "max_generation_ticks", Reason: "cannot be negative"}
	}
	return nil
}
