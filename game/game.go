// Package game wires the particle engine to configuration, telemetry and the
// raylib front end for headless and graphical runs.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/sparks/camera"
	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/renderer"
	"github.com/pthm-cable/sparks/systems"
	"github.com/pthm-cable/sparks/telemetry"
	"github.com/pthm-cable/sparks/ui"
)

// DefaultDT is the step length used when neither the options nor the
// screen config give one.
const DefaultDT = 1.0 / 60.0

// ErrUnknownPreset is returned when spawning a preset that is not configured.
var ErrUnknownPreset = errors.New("unknown emitter preset")

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           uint64         // 0 = config seed, then time-based
	Mode           string         // empty = config sampler mode
	DT             float32        // fixed step; 0 = 1/target_fps
	StatsWindowSec float64        // 0 = config stats window
	OutputDir      string         // empty = no CSV output
	LogStats       bool
	Headless       bool
}

// Game owns one particle system and everything that feeds or observes it.
type Game struct {
	cfg *config.Config

	sampler   *systems.Sampler
	particles *systems.ParticleSystem

	// Interactive spawning
	presets      []string
	presetIdx    int
	emissionRate float32

	// Periodic spawns from config, seconds until next respawn per entry
	respawn []float32

	dt     float32
	paused bool

	// Telemetry
	collector     *telemetry.Collector
	tracker       *telemetry.EmitterTracker
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)

	// Front end, nil when headless
	camera           *camera.Camera
	particleRenderer *renderer.ParticleRenderer
	hud              *ui.HUD
	controls         *ui.ControlPanel
	pending          ui.ControlActions
}

// NewGameWithOptions builds a game and spawns the configured startup emitters.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	mode := cfg.Derived.SamplerMode
	if opts.Mode != "" {
		m, err := systems.ParseMode(opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("sampler mode: %w", err)
		}
		mode = m
	}

	seed := opts.Seed
	if seed == 0 {
		seed = cfg.Sampler.Seed
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	dt := opts.DT
	if dt <= 0 {
		dt = DefaultDT
		if cfg.Screen.TargetFPS > 0 {
			dt = 1 / float32(cfg.Screen.TargetFPS)
		}
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}

	sampler := systems.NewSampler(seed, mode)
	if cfg.Sampler.NoiseStep > 0 {
		sampler.SetNoiseStep(cfg.Sampler.NoiseStep)
	}

	particles := systems.NewParticleSystem(cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	particles.Initialize(cfg.Pool.Capacity)

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:           cfg,
		sampler:       sampler,
		particles:     particles,
		dt:            dt,
		respawn:       make([]float32, len(cfg.Spawn)),
		collector:     telemetry.NewCollector(statsWindow),
		tracker:       telemetry.NewEmitterTracker(),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		outputManager: output,
		logStats:      opts.LogStats,
	}
	for _, e := range cfg.Emitters {
		g.presets = append(g.presets, e.Name)
	}
	g.selectPreset(0)

	particles.OnEvict(g.completeEmitter)

	if !opts.Headless {
		g.camera = camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), cfg.Derived.WorldW32, cfg.Derived.WorldH32)
		g.particleRenderer = renderer.NewParticleRenderer()
		g.particleRenderer.Visible = g.camera.IsVisible
		g.hud = ui.NewHUD()
		g.controls = ui.NewControlPanel(int32(cfg.Screen.Width)-230, 10, 220)
	}

	if err := g.spawnStartupEmitters(); err != nil {
		output.Close()
		return nil, err
	}

	slog.Info("game initialized",
		"seed", seed,
		"mode", mode.String(),
		"dt", dt,
		"world_w", cfg.Derived.WorldW32,
		"world_h", cfg.Derived.WorldH32,
		"emitters", particles.EmitterCount(),
	)
	return g, nil
}

// UpdateHeadless runs one simulation step without input or rendering.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartStep()
	g.simulationStep()
	g.perfCollector.EndStep()
}

// Update handles input and runs one simulation step unless paused.
func (g *Game) Update() {
	g.perfCollector.RecordFrame()
	g.perfCollector.StartStep()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.handleInput()

	if !g.paused {
		g.simulationStep()
	}
	g.perfCollector.EndStep()
}

// simulationStep advances the world by one fixed dt.
func (g *Game) simulationStep() {
	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	g.updateRespawns()
	g.particles.Update(g.dt)

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	f := g.particles.LastFrame()
	g.collector.RecordFrame(telemetry.FrameSample{
		DT:        g.dt,
		Particles: g.particles.Count(),
		Spawned:   f.Spawned,
		Culled:    f.Culled,
		Evicted:   f.Evicted,
	})
	g.flushTelemetry()
}

// SetStatsCallback registers fn to receive every flushed stats window.
func (g *Game) SetStatsCallback(fn func(telemetry.WindowStats)) {
	g.statsCallback = fn
}

// Unload completes live emitter records and closes output files.
func (g *Game) Unload() {
	g.completeAll()
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of simulated frames.
func (g *Game) Frame() int64 {
	return g.collector.Frame()
}

// SimTime returns the simulated seconds so far.
func (g *Game) SimTime() float64 {
	return g.collector.SimTime()
}

// Particles returns the particle system.
func (g *Game) Particles() *systems.ParticleSystem {
	return g.particles
}

// Sampler returns the sampler shared by every emitter.
func (g *Game) Sampler() *systems.Sampler {
	return g.sampler
}

// Preset returns the preset used for interactive spawns.
func (g *Game) Preset() string {
	if len(g.presets) == 0 {
		return ""
	}
	return g.presets[g.presetIdx]
}

// EmissionRate returns the rate used for interactive spawns.
func (g *Game) EmissionRate() float32 {
	return g.emissionRate
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}
