package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Particles  int
	Emitters   int
	Mode       string
	NoiseIndex float64
	Preset     string
	Frame      int64
	FPS        int32
	Paused     bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Lines returns the HUD text below the title, one entry per row.
func (d HUDData) Lines() []string {
	lines := []string{
		fmt.Sprintf("Particles: %d | Emitters: %d", d.Particles, d.Emitters),
		fmt.Sprintf("Frame: %d | FPS: %d", d.Frame, d.FPS),
		fmt.Sprintf("Sampler: %s | Preset: %s", d.Mode, d.Preset),
	}
	if d.NoiseIndex > 0 {
		lines[2] += fmt.Sprintf(" | Noise: %.2f", d.NoiseIndex)
	}
	return lines
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	theme := h.renderer.Theme

	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	y := int32(35)
	for _, line := range data.Lines() {
		rl.DrawText(line, 10, y, 16, theme.LabelColor)
		y += 20
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
