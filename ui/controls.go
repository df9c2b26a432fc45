package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/systems"
)

// Emission rate slider bounds, in emissions per second.
const (
	MinEmissionRate = 1
	MaxEmissionRate = 200
)

// ControlState is what the panel displays.
type ControlState struct {
	EmissionRate float32
	Mode         systems.SamplerMode
	Preset       string
}

// ControlActions reports what the user changed this frame.
type ControlActions struct {
	EmissionRate   float32
	RateChanged    bool
	Mode           systems.SamplerMode
	ModeChanged    bool
	ResetNoise     bool
	NextPreset     bool
	ClearParticles bool
}

// Any reports whether any control was used.
func (a ControlActions) Any() bool {
	return a.RateChanged || a.ModeChanged || a.ResetNoise || a.NextPreset || a.ClearParticles
}

// ControlPanel renders the right-side raygui panel.
type ControlPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlPanel creates a new control panel.
func NewControlPanel(x, y, width int32) *ControlPanel {
	return &ControlPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetPosition updates the panel position.
func (c *ControlPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Toggle switches panel visibility.
func (c *ControlPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// IsVisible returns whether the panel is shown.
func (c *ControlPanel) IsVisible() bool {
	return c.visible
}

// Contains reports whether a screen point falls on the visible panel.
func (c *ControlPanel) Contains(x, y float32) bool {
	if !c.visible {
		return false
	}
	return x >= float32(c.x) && x <= float32(c.x+c.width) &&
		y >= float32(c.y) && y <= float32(c.y+c.height())
}

func (c *ControlPanel) height() int32 {
	r := c.renderer
	modes := int32(len(systems.SamplerModes))
	return r.Theme.Padding*3 + r.Theme.LineHeight*5 + 20 + modes*34 + 3*34
}

// Draw renders the panel and returns the user's changes.
func (c *ControlPanel) Draw(state ControlState) ControlActions {
	actions := ControlActions{EmissionRate: state.EmissionRate, Mode: state.Mode}
	if !c.visible {
		return actions
	}

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + pad)
	inner := float32(c.width - 2*pad)
	y := r.DrawSectionHeader(c.x+pad, c.y+pad, "Controls")

	// Emission rate slider
	y = r.DrawLabel(int32(x), y, fmt.Sprintf("Emission rate: %.0f/s", state.EmissionRate))
	rate := gui.SliderBar(
		rl.Rectangle{X: x + 20, Y: float32(y), Width: inner - 60, Height: 20},
		fmt.Sprint(MinEmissionRate), fmt.Sprint(MaxEmissionRate),
		state.EmissionRate, MinEmissionRate, MaxEmissionRate,
	)
	if rate != state.EmissionRate {
		actions.EmissionRate = rate
		actions.RateChanged = true
	}
	y += 20 + pad

	// Sampler mode buttons
	y = r.DrawLabel(int32(x), y, "Sampler")
	for _, m := range systems.SamplerModes {
		label := m.String()
		if m == state.Mode {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 28}, label) && m != state.Mode {
			actions.Mode = m
			actions.ModeChanged = true
		}
		y += 34
	}

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 28}, "Reset noise") {
		actions.ResetNoise = true
	}
	y += 34

	y = r.DrawLabel(int32(x), y, "Preset: "+state.Preset)
	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 28}, "Next preset") {
		actions.NextPreset = true
	}
	y += 34

	if gui.Button(rl.Rectangle{X: x, Y: float32(y), Width: inner, Height: 28}, "Clear") {
		actions.ClearParticles = true
	}

	return actions
}
