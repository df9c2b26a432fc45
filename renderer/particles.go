// Package renderer draws particle pool snapshots with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/systems"
)

// ParticleRenderer renders a particle pool.
type ParticleRenderer struct {
	// Radius of a particle with scale {1,1} and full remaining lifetime.
	BaseSize float32
	// MinSize keeps fading particles visible until they are culled.
	MinSize float32
	// Fade scales alpha by remaining/lifetime.
	Fade bool
	// Visible culls particles outside the view. nil draws everything.
	Visible func(x, y, radius float32) bool
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{
		BaseSize: 2.5,
		MinSize:  0.5,
		Fade:     true,
	}
}

// Draw renders all live particles. The pool is only read.
func (r *ParticleRenderer) Draw(pool *systems.ParticlePool) {
	positions := pool.Positions()
	scales := pool.Scales()
	colors := pool.Colors()
	lifetimes := pool.Lifetimes()
	remaining := pool.RemainingTimes()

	for i := range positions {
		lifeRatio := LifeRatio(remaining[i], lifetimes[i])

		c := colors[i]
		if r.Fade {
			c = c.WithAlpha(uint8(float32(c.A) * lifeRatio))
		}

		size := r.BaseSize * (scales[i].X + scales[i].Y) * 0.5 * (0.5 + 0.5*lifeRatio)
		if size < r.MinSize {
			size = r.MinSize
		}

		p := positions[i]
		if r.Visible != nil && !r.Visible(p.X, p.Y, size) {
			continue
		}
		rl.DrawCircleV(rl.Vector2{X: p.X, Y: p.Y}, size, toRL(c))
	}
}

// DrawEmitters marks each emitter position, dimmed once it stops emitting.
func (r *ParticleRenderer) DrawEmitters(ps *systems.ParticleSystem) {
	ps.Emitters(func(e *systems.Emitter) {
		c := e.Color()
		if !e.Active() {
			c = c.WithAlpha(c.A / 3)
		}
		p := e.Position()
		rl.DrawCircleLines(int32(p.X), int32(p.Y), 6, toRL(c))
	})
}

// LifeRatio returns remaining/lifetime clamped to [0, 1].
func LifeRatio(remaining, lifetime float32) float32 {
	if lifetime <= 0 {
		return 0
	}
	ratio := remaining / lifetime
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

func toRL(c components.Color) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
