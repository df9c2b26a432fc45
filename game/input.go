package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/components"
	"github.com/pthm-cable/sparks/ui"
)

// Zoom factor per mouse wheel notch.
const wheelZoomStep = 1.1

// handleInput processes keyboard, mouse and control panel input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	// Control panel clicks were collected during the last Draw.
	actions := g.pending
	g.pending = ui.ControlActions{}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyM) {
		actions.Mode = g.sampler.Mode().Next()
		actions.ModeChanged = true
	}
	if rl.IsKeyPressed(rl.KeyN) {
		actions.ResetNoise = true
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		actions.NextPreset = true
	}
	if rl.IsKeyPressed(rl.KeyC) {
		actions.ClearParticles = true
	}
	if rl.IsKeyPressed(rl.KeyH) {
		g.controls.Toggle()
	}

	g.applyActions(actions)

	g.handleCameraInput()

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		mouse := rl.GetMousePosition()
		if !g.controls.Contains(mouse.X, mouse.Y) {
			wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)
			g.spawnInteractive(components.Vec2{X: wx, Y: wy})
		}
	}
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.camera.Resize(w, h)
}

// handleCameraInput zooms with the wheel and pans with a right drag.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !g.controls.Contains(mouse.X, mouse.Y) {
		factor := float32(wheelZoomStep)
		if wheel < 0 {
			factor = 1 / factor
		}
		g.camera.ZoomAt(mouse.X, mouse.Y, factor)
	}

	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		delta := rl.GetMouseDelta()
		g.camera.Pan(-delta.X, -delta.Y)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
	}
}

// applyActions applies control changes to the sampler and emitters.
func (g *Game) applyActions(a ui.ControlActions) {
	if a.ModeChanged {
		g.sampler.SetMode(a.Mode)
	}
	if a.ResetNoise {
		g.sampler.ResetNoiseIndex()
	}
	if a.NextPreset {
		g.selectPreset(g.presetIdx + 1)
	}
	if a.RateChanged && a.EmissionRate > 0 {
		g.emissionRate = a.EmissionRate
	}
	if a.ClearParticles {
		g.clear()
	}
}
