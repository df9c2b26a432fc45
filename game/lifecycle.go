package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/systems"
)

// SpawnPreset creates an emitter from a named preset at pos and hands it to
// the particle system.
func (g *Game) SpawnPreset(name string, pos components.Vec2) (systems.EmitterID, error) {
	preset, ok := g.cfg.Preset(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return g.spawn(name, preset.Build(g.particles, g.sampler, pos))
}

// spawnInteractive spawns the selected preset at pos with the current
// emission rate override.
func (g *Game) spawnInteractive(pos components.Vec2) {
	name := g.Preset()
	preset, ok := g.cfg.Preset(name)
	if !ok {
		return
	}
	e := preset.Build(g.particles, g.sampler, pos)
	e.SetEmissionRate(g.emissionRate)
	if _, err := g.spawn(name, e); err != nil {
		slog.Error("failed to spawn emitter", "preset", name, "error", err)
	}
}

func (g *Game) spawn(preset string, e *systems.Emitter) (systems.EmitterID, error) {
	if err := e.Validate(); err != nil {
		return 0, fmt.Errorf("preset %q: %w", preset, err)
	}

	id := g.particles.SpawnEmitter(e)
	pos := e.Position()
	g.tracker.Register(uint32(id), preset, g.collector.Frame(), g.collector.SimTime(), pos.X, pos.Y)
	g.collector.RecordEmitterAdded()

	slog.Debug("emitter spawned", "id", id, "preset", preset, "x", pos.X, "y", pos.Y)
	return id, nil
}

// spawnStartupEmitters places every configured spawn entry once.
func (g *Game) spawnStartupEmitters() error {
	for i := range g.cfg.Spawn {
		if err := g.spawnEntry(i); err != nil {
			return err
		}
	}
	return nil
}

func (g *Game) spawnEntry(i int) error {
	s := g.cfg.Spawn[i]
	pos := components.Vec2{
		X: s.At[0] * g.cfg.Derived.WorldW32,
		Y: s.At[1] * g.cfg.Derived.WorldH32,
	}
	if _, err := g.SpawnPreset(s.Emitter, pos); err != nil {
		return fmt.Errorf("spawn[%d]: %w", i, err)
	}
	g.respawn[i] = s.Every
	return nil
}

// updateRespawns re-spawns entries whose interval has run out.
func (g *Game) updateRespawns() {
	for i, s := range g.cfg.Spawn {
		if s.Every <= 0 {
			continue
		}
		g.respawn[i] -= g.dt
		if g.respawn[i] > 0 {
			continue
		}
		if err := g.spawnEntry(i); err != nil {
			slog.Error("respawn failed", "error", err)
			g.respawn[i] = s.Every
		}
	}
}

// completeEmitter closes the telemetry record of an evicted emitter.
// Eviction happens inside the frame being simulated.
func (g *Game) completeEmitter(e *systems.Emitter) {
	active := e.Elapsed()
	if d := e.Duration(); active > d {
		active = d
	}
	rec := g.tracker.Complete(
		uint32(e.ID()),
		g.collector.Frame()+1,
		g.collector.SimTime()+float64(g.dt),
		e.Emitted(),
		active,
	)
	if err := g.outputManager.WriteEmitter(rec); err != nil {
		slog.Error("failed to write emitter record", "error", err)
	}
}

// completeAll closes the records of every live emitter.
func (g *Game) completeAll() {
	g.particles.Emitters(func(e *systems.Emitter) {
		rec := g.tracker.Complete(uint32(e.ID()), g.collector.Frame(), g.collector.SimTime(), e.Emitted(), e.Elapsed())
		if err := g.outputManager.WriteEmitter(rec); err != nil {
			slog.Error("failed to write emitter record", "error", err)
		}
	})
}

// clear drops every particle and emitter.
func (g *Game) clear() {
	g.completeAll()
	g.particles.Clear()
}

// selectPreset makes preset i current and resets the rate override to the
// preset's own rate.
func (g *Game) selectPreset(i int) {
	if len(g.presets) == 0 {
		return
	}
	g.presetIdx = i % len(g.presets)
	if p, ok := g.cfg.Preset(g.presets[g.presetIdx]); ok {
		g.emissionRate = p.EmissionRate
	}
}
