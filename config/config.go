package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/tank-physics/parameter"
)

// Default file locations relative to the working directory
const (
	DefaultPath  = "config/tank-physics.yaml"
	DefaultScene = "scenes/duel.yaml"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Physics tunes the world and its solver
type Physics struct {
	FixedStep            time.Duration `yaml:"fixed_step"`
	Gravity              float32       `yaml:"gravity"`
	CorrectionThreshold  float32       `yaml:"correction_threshold"`
	CorrectionPercentage float32       `yaml:"correction_percentage"`
	SameEdgeThreshold    float32       `yaml:"same_edge_threshold"`
	CollisionCheckLimit  int           `yaml:"collision_check_limit"`
	SimulationTimeout    time.Duration `yaml:"simulation_timeout"`
}

// Planner tunes the AI shot search
type Planner struct {
	Iterations     int     `yaml:"iterations"`
	IntensityStep  float32 `yaml:"intensity_step"`
	AngleStep      float32 `yaml:"angle_step"`
	IntensityError float32 `yaml:"intensity_error"`
	AngleError     float32 `yaml:"angle_error"`
	Seed           uint64  `yaml:"seed"`
}

// Audio controls impact sounds
type Audio struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

// Render controls terminal projection
type Render struct {
	CellsPerUnit float32 `yaml:"cells_per_unit"`
	ShowMetrics  bool    `yaml:"show_metrics"`
}

// Config is the root of the YAML document
type Config struct {
	Physics Physics `yaml:"physics"`
	Planner Planner `yaml:"planner"`
	Audio   Audio   `yaml:"audio"`
	Render  Render  `yaml:"render"`
	Scene   string  `yaml:"scene,omitempty"`
}

// DefaultPhysics returns the engine defaults
func DefaultPhysics() Physics {
	return Physics{
		FixedStep:            parameter.FixedStep,
		Gravity:              parameter.Gravity,
		CorrectionThreshold:  parameter.CorrectionThreshold,
		CorrectionPercentage: parameter.CorrectionPercentage,
		SameEdgeThreshold:    parameter.SameEdgeThreshold,
		CollisionCheckLimit:  parameter.CollisionCheckPerFrameLimit,
		SimulationTimeout:    parameter.SimulationTimeout,
	}
}

// Default returns a complete configuration
func Default() Config {
	return Config{
		Physics: DefaultPhysics(),
		Planner: Planner{
			Iterations:     parameter.PlannerIterations,
			IntensityStep:  parameter.PlannerIntensityStep,
			AngleStep:      parameter.PlannerAngleStep,
			IntensityError: parameter.PlannerIntensityError,
			AngleError:     parameter.PlannerAngleError,
			Seed:           1,
		},
		Audio: Audio{Enabled: true, Volume: 0.5},
		Render: Render{
			CellsPerUnit: 2,
			ShowMetrics:  true,
		},
		Scene: DefaultScene,
	}
}

// Load reads path over the defaults; a missing file yields Default()
// Keys absent from the file keep their default values
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating the parent directory
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects values the simulation cannot run with
func (c Config) Validate() error {
	p := c.Physics
	switch {
	case p.FixedStep <= 0:
		return fmt.Errorf("%w: fixed_step must be positive, got %v", ErrInvalid, p.FixedStep)
	case p.CollisionCheckLimit < 1:
		return fmt.Errorf("%w: collision_check_limit must be at least 1, got %d", ErrInvalid, p.CollisionCheckLimit)
	case p.SimulationTimeout < p.FixedStep:
		return fmt.Errorf("%w: simulation_timeout %v shorter than fixed_step", ErrInvalid, p.SimulationTimeout)
	case p.CorrectionPercentage < 0 || p.CorrectionPercentage > 1:
		return fmt.Errorf("%w: correction_percentage outside [0,1]: %v", ErrInvalid, p.CorrectionPercentage)
	case p.CorrectionThreshold < 0 || p.SameEdgeThreshold < 0:
		return fmt.Errorf("%w: thresholds must be non-negative", ErrInvalid)
	case c.Planner.Iterations < 0:
		return fmt.Errorf("%w: planner iterations must be non-negative, got %d", ErrInvalid, c.Planner.Iterations)
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return fmt.Errorf("%w: audio volume outside [0,1]: %v", ErrInvalid, c.Audio.Volume)
	case c.Render.CellsPerUnit <= 0:
		return fmt.Errorf("%w: cells_per_unit must be positive", ErrInvalid)
	}
	return nil
}
