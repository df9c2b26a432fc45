// Package config provides configuration loading and access for the particle engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Pool      PoolConfig      `yaml:"pool"`
	Emitters  []EmitterConfig `yaml:"emitters"`
	Spawn     []SpawnConfig   `yaml:"spawn"`
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

// WorldConfig holds the culling rectangle.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// SamplerConfig selects the distribution used for emitter sampling.
type SamplerConfig struct {
	Mode      string  `yaml:"mode"`       // uniform, gaussian, perlin, simplex
	Seed      uint64  `yaml:"seed"`       // 0 = time-based, chosen by the caller
	NoiseStep float64 `yaml:"noise_step"` // Noise index advance per coherent sample
}

// PoolConfig holds particle pool sizing.
type PoolConfig struct {
	Capacity int `yaml:"capacity"`
}

// EmitterConfig is a named emitter preset.
type EmitterConfig struct {
	Name                 string     `yaml:"name"`
	Direction            [2]float32 `yaml:"direction"`      // [0,0] = isotropic
	SpreadDegrees        float32    `yaml:"spread_degrees"` // 360 = no constraint
	Duration             float32    `yaml:"duration"`
	EmissionRate         float32    `yaml:"emission_rate"`
	ParticlesPerEmission int        `yaml:"particles_per_emission"`
	Speed                [2]float32 `yaml:"speed"`    // [min, max]
	Lifetime             [2]float32 `yaml:"lifetime"` // [min, max] seconds
	Color                [4]uint8   `yaml:"color"`    // RGBA
	ColorJitter          uint8      `yaml:"color_jitter"`
}

// SpawnConfig places a preset in the world at startup.
type SpawnConfig struct {
	Emitter string     `yaml:"emitter"`
	At      [2]float32 `yaml:"at"`    // Fractions of world size, [0.5, 0.5] = centre
	Every   float32    `yaml:"every"` // Respawn interval in seconds, 0 = once
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32     float32             // Effective world width
	WorldH32     float32             // Effective world height
	SamplerMode  systems.SamplerMode // Parsed Sampler.Mode
	EmitterIndex map[string]int      // name -> index into Emitters
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
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a configuration from YAML overrides on top of the embedded
// defaults. Empty data yields the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if len(data) > 0 {
		// Unmarshal into same struct - only overwrites fields present in data
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)

	mode, err := systems.ParseMode(c.Sampler.Mode)
	if err != nil {
		return fmt.Errorf("%w: sampler: %w", ErrInvalidConfig, err)
	}
	c.Derived.SamplerMode = mode

	// Apply defaults to presets that don't specify all fields
	for i := range c.Emitters {
		e := &c.Emitters[i]
		if e.Duration == 0 {
			e.Duration = systems.DefaultDuration
		}
		if e.EmissionRate == 0 {
			e.EmissionRate = systems.DefaultEmissionRate
		}
		if e.ParticlesPerEmission == 0 {
			e.ParticlesPerEmission = systems.DefaultParticlesPerEmission
		}
		if e.SpreadDegrees == 0 {
			e.SpreadDegrees = 360
		}
		if e.Speed == [2]float32{} {
			e.Speed = [2]float32{systems.DefaultMinSpeed, systems.DefaultMaxSpeed}
		}
		if e.Lifetime == [2]float32{} {
			e.Lifetime = [2]float32{systems.DefaultMinLifetime, systems.DefaultMaxLifetime}
		}
		if e.Color == [4]uint8{} {
			e.Color = [4]uint8{255, 255, 255, 255}
		}
	}

	// Build emitter index for lookup by name
	c.Derived.EmitterIndex = make(map[string]int, len(c.Emitters))
	for i, e := range c.Emitters {
		c.Derived.EmitterIndex[e.Name] = i
	}
	return nil
}

// Validate checks the loaded configuration, including every emitter preset.
func (c *Config) Validate() error {
	if c.Derived.WorldW32 <= 0 || c.Derived.WorldH32 <= 0 {
		return fmt.Errorf("%w: world size %vx%v must be positive", ErrInvalidConfig, c.Derived.WorldW32, c.Derived.WorldH32)
	}
	if c.Pool.Capacity < 0 {
		return fmt.Errorf("%w: pool capacity %d is negative", ErrInvalidConfig, c.Pool.Capacity)
	}

	seen := make(map[string]bool, len(c.Emitters))
	for _, e := range c.Emitters {
		if e.Name == "" {
			return fmt.Errorf("%w: emitter preset without a name", ErrInvalidConfig)
		}
		if seen[e.Name] {
			return fmt.Errorf("%w: duplicate emitter preset %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = true

		// Build a detached emitter so the engine's own rules decide validity.
		probe := e.Build(nil, nil, components.Vec2{})
		if err := probe.Validate(); err != nil {
			return fmt.Errorf("%w: emitter %q: %w", ErrInvalidConfig, e.Name, err)
		}
	}

	for i, s := range c.Spawn {
		if _, ok := c.Derived.EmitterIndex[s.Emitter]; !ok {
			return fmt.Errorf("%w: spawn[%d] references unknown emitter %q", ErrInvalidConfig, i, s.Emitter)
		}
		if s.Every < 0 {
			return fmt.Errorf("%w: spawn[%d] interval %v is negative", ErrInvalidConfig, i, s.Every)
		}
	}
	return nil
}

// Preset returns the emitter preset with the given name.
func (c *Config) Preset(name string) (EmitterConfig, bool) {
	i, ok := c.Derived.EmitterIndex[name]
	if !ok {
		return EmitterConfig{}, false
	}
	return c.Emitters[i], true
}

// Build creates an emitter from the preset at position.
func (e EmitterConfig) Build(sink systems.Sink, sampler *systems.Sampler, position components.Vec2) *systems.Emitter {
	em := systems.NewEmitter(sink, sampler, position)
	em.SetDirection(components.Vec2{X: e.Direction[0], Y: e.Direction[1]})
	em.SetAngle(e.SpreadDegrees * math.Pi / 180)
	em.SetDuration(e.Duration)
	em.SetEmissionRate(e.EmissionRate)
	em.SetParticlesPerEmission(e.ParticlesPerEmission)
	em.SetSpeedRange(e.Speed[0], e.Speed[1])
	em.SetLifetimeRange(e.Lifetime[0], e.Lifetime[1])
	em.SetColor(components.RGBA(e.Color[0], e.Color[1], e.Color[2], e.Color[3]))
	em.SetColorJitter(e.ColorJitter)
	return em
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
