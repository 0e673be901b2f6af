// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Wind      WindConfig      `yaml:"wind"`
	Cloth     ClothConfig     `yaml:"cloth"`
	Glider    GliderConfig    `yaml:"glider"`
	Flight    FlightConfig    `yaml:"flight"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// SimConfig holds stepping and determinism parameters.
type SimConfig struct {
	Seed    int64   `yaml:"seed"`     // noise seed for the wind field
	MaxStep float64 `yaml:"max_step"` // frame dt clamp in seconds
}

// VecConfig is a 2D direction in config files.
type VecConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// WindConfig holds wind field parameters.
type WindConfig struct {
	BaseStrength  float64   `yaml:"base_strength"`
	GustStrength  float64   `yaml:"gust_strength"`
	Turbulence    float64   `yaml:"turbulence"`
	NoiseScale    float64   `yaml:"noise_scale"`
	TimeScale     float64   `yaml:"time_scale"`
	BaseDirection VecConfig `yaml:"base_direction"`

	// Transient event shapes injected by input or scripts.
	GustRadius     float64 `yaml:"gust_radius"`
	GustDuration   float64 `yaml:"gust_duration"`
	VortexStrength float64 `yaml:"vortex_strength"`
	VortexRadius   float64 `yaml:"vortex_radius"`
	VortexDuration float64 `yaml:"vortex_duration"`
}

// ClothConfig holds the cape grid parameters.
type ClothConfig struct {
	Segments            int     `yaml:"segments"`
	Width               int     `yaml:"width"`
	SegmentLength       float64 `yaml:"segment_length"`
	WidthSpacing        float64 `yaml:"width_spacing"` // 0 = derived from segment_length
	Stiffness           float64 `yaml:"stiffness"`
	BendStiffness       float64 `yaml:"bend_stiffness"`
	Damping             float64 `yaml:"damping"`
	Gravity             float64 `yaml:"gravity"`
	WindInfluence       float64 `yaml:"wind_influence"`
	WindRampBase        float64 `yaml:"wind_ramp_base"`
	LinearDrag          float64 `yaml:"linear_drag"`
	MassGrowth          float64 `yaml:"mass_growth"`
	AnchorVelocityCarry float64 `yaml:"anchor_velocity_carry"`
	Iterations          int     `yaml:"iterations"`
}

// GliderConfig holds the cape wearer's movement parameters.
type GliderConfig struct {
	Radius       float64 `yaml:"radius"`
	MaxSpeed     float64 `yaml:"max_speed"`
	Acceleration float64 `yaml:"acceleration"`
	Drag         float64 `yaml:"drag"`
	CapeOffset   float64 `yaml:"cape_offset"`
}

// FlightConfig holds glide behavior parameters.
type FlightConfig struct {
	LiftForce        float64 `yaml:"lift_force"`
	DiveForce        float64 `yaml:"dive_force"`
	HorizontalForce  float64 `yaml:"horizontal_force"`
	MinGlideSpeed    float64 `yaml:"min_glide_speed"`
	MaxGlideSpeed    float64 `yaml:"max_glide_speed"`
	AltitudeGain     float64 `yaml:"altitude_gain"`
	SpeedLossOnClimb float64 `yaml:"speed_loss_on_climb"`
	SpeedGainOnDive  float64 `yaml:"speed_gain_on_dive"`
	WindAssist       float64 `yaml:"wind_assist"`
	TurbulenceEffect float64 `yaml:"turbulence_effect"`
}

// CameraConfig holds viewport follow parameters.
type CameraConfig struct {
	Smoothing float64 `yaml:"smoothing"`
	Zoom      float64 `yaml:"zoom"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Window        int     `yaml:"window"`         // per-frame samples kept for rolling stats
	FlushInterval float64 `yaml:"flush_interval"` // seconds between CSV rows
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32 float32
	ScreenH32 float32
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
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
