// Package config provides configuration loading and access for the particle field.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Material  MaterialConfig  `yaml:"material"`
	Camera    CameraConfig    `yaml:"camera"`
	Controls  ControlsConfig  `yaml:"controls"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
	MSAA      bool   `yaml:"msaa"`
}

// ParticlesConfig holds particle buffer parameters.
type ParticlesConfig struct {
	Count  int     `yaml:"count"`  // Number of particles (N)
	Spread float64 `yaml:"spread"` // Cube edge length; positions are in [-spread/2, spread/2)
}

// MaterialConfig holds the point material settings.
type MaterialConfig struct {
	Size            float64 `yaml:"size"`
	SizeAttenuation bool    `yaml:"size_attenuation"`
	Transparent     bool    `yaml:"transparent"`
	AlphaMap        string  `yaml:"alpha_map"` // Texture path (empty = no mask)
	DepthWrite      bool    `yaml:"depth_write"`
	Blending        string  `yaml:"blending"` // "normal" or "additive"
	VertexColors    bool    `yaml:"vertex_colors"`
}

// CameraConfig holds perspective camera parameters.
type CameraConfig struct {
	Fov      float64    `yaml:"fov"` // Vertical field of view in degrees
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
}

// ControlsConfig holds orbit control parameters.
type ControlsConfig struct {
	EnableDamping   bool    `yaml:"enable_damping"`
	DampingFactor   float64 `yaml:"damping_factor"`
	RotateSpeed     float64 `yaml:"rotate_speed"`
	ZoomSpeed       float64 `yaml:"zoom_speed"`
	PanSpeed        float64 `yaml:"pan_speed"`
	MinDistance     float64 `yaml:"min_distance"`
	MaxDistance     float64 `yaml:"max_distance"`
	AutoRotate      bool    `yaml:"auto_rotate"`
	AutoRotateSpeed float64 `yaml:"auto_rotate_speed"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow     int     `yaml:"perf_window"`      // Ticks in the rolling perf window
	LogIntervalSec float64 `yaml:"log_interval_sec"` // Seconds between perf log lines
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32  float32 // Screen.Width as float32
	HalfSpread float32 // Particles.Spread / 2
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the renderer cannot work with.
func (c *Config) validate() error {
	switch c.Material.Blending {
	case "normal", "additive":
	default:
		return fmt.Errorf("material.blending: unknown mode %q", c.Material.Blending)
	}
	if c.Particles.Count < 0 {
		return fmt.Errorf("particles.count: must be >= 0, got %d", c.Particles.Count)
	}
	if !(c.Particles.Spread > 0) {
		return fmt.Errorf("particles.spread: must be > 0, got %v", c.Particles.Spread)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("camera: need 0 < near < far, got near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.HalfSpread = float32(c.Particles.Spread / 2)

	if c.Telemetry.PerfWindow < 1 {
		c.Telemetry.PerfWindow = 60
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
