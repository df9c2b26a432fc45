package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/ui"
)

const controlsLegend = "Click: spawn | Tab: preset | M: sampler | N: reset noise | C: clear | H: panel | Wheel/RMB: zoom/pan | R: reset view | Space: pause"

// Draw renders the particles and the UI. Must not be called when headless.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 10, B: 16, A: 255})

	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: g.camera.ViewportW / 2, Y: g.camera.ViewportH / 2},
		Target: rl.Vector2{X: g.camera.X, Y: g.camera.Y},
		Zoom:   g.camera.Zoom,
	})
	rl.DrawRectangleLines(0, 0, int32(g.camera.WorldW), int32(g.camera.WorldH), rl.DarkGray)
	g.particleRenderer.Draw(g.particles.Pool())
	g.particleRenderer.DrawEmitters(g.particles)
	rl.EndMode2D()

	g.drawUI()

	rl.EndDrawing()
}

func (g *Game) drawUI() {
	g.hud.Draw(ui.HUDData{
		Title:      "Sparks",
		Particles:  g.particles.Count(),
		Emitters:   g.particles.EmitterCount(),
		Mode:       g.sampler.Mode().String(),
		NoiseIndex: g.sampler.NoiseIndex(),
		Preset:     g.Preset(),
		Frame:      g.Frame(),
		FPS:        rl.GetFPS(),
		Paused:     g.paused,
	})

	screenW := int32(rl.GetScreenWidth())
	g.controls.SetPosition(screenW-230, 10)
	g.pending = g.controls.Draw(ui.ControlState{
		EmissionRate: g.emissionRate,
		Mode:         g.sampler.Mode(),
		Preset:       g.Preset(),
	})

	g.hud.DrawControls(int32(rl.GetScreenHeight()), controlsLegend)
}
