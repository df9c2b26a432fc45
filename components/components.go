// Package components defines the value types shared by the particle core
// and the collaborators that draw or configure it.
package components

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Common colors.
var (
	White = Color{R: 255, G: 255, B: 255, A: 255}
	Black = Color{A: 255}
)

// RGBA builds a color from its channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// WithAlpha returns c with its alpha channel replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}
