// Sampler preview tool - plots successive sampler draws for each mode with sliders.
//
// Usage: go run ./cmd/samplerpreview
package main

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sparks/systems"
)

const (
	windowWidth  = 1000
	windowHeight = 600
	plotWidth    = 640
	plotHeight   = 300
	histBins     = 32
	panelX       = plotWidth + 30
	panelWidth   = windowWidth - panelX - 10
)

// PreviewParams holds what the preview samples with.
type PreviewParams struct {
	Mode      systems.SamplerMode
	NoiseStep float32
	Seed      uint64
	Samples   int
}

func defaultParams() PreviewParams {
	return PreviewParams{
		Mode:      systems.ModePerlin,
		NoiseStep: systems.DefaultNoiseStep,
		Seed:      12345,
		Samples:   plotWidth,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Sampler Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()
	values := generate(params)
	needsRegen := false

	for !rl.WindowShouldClose() {
		if needsRegen {
			values = generate(params)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		drawSeries(values, 10, 10)
		drawHistogram(histogram(values, histBins), 10, plotHeight+30)

		mean, lo, hi := summarize(values)
		statsY := int32(2*plotHeight/3 + plotHeight + 50)
		rl.DrawText(fmt.Sprintf("Mean: %.3f  Min: %.3f  Max: %.3f", mean, lo, hi), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Mean |delta|: %.4f", meanAbsDelta(values)), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		y := float32(10)
		rl.DrawText("Sampler", panelX, int32(y), 20, rl.DarkGray)
		y += 35

		for _, m := range systems.SamplerModes {
			label := m.String()
			if m == params.Mode {
				label = "> " + label
			}
			if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 140, Height: 28}, label) && m != params.Mode {
				params.Mode = m
				needsRegen = true
			}
			y += 34
		}
		y += 10

		rl.DrawText("Noise step (coherent modes)", panelX, int32(y), 14, rl.Gray)
		y += 18
		newStep := gui.SliderBar(
			rl.Rectangle{X: panelX + 30, Y: y, Width: panelWidth - 110, Height: 20},
			"0.001", "0.5",
			params.NoiseStep, 0.001, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.3f", params.NoiseStep), panelX+panelWidth-70, int32(y+2), 16, rl.DarkGray)
		if newStep != params.NoiseStep {
			params.NoiseStep = newStep
			needsRegen = true
		}
		y += 40

		rl.DrawText("Seed", panelX, int32(y), 14, rl.Gray)
		y += 18
		newSeed := gui.SliderBar(
			rl.Rectangle{X: panelX + 30, Y: y, Width: panelWidth - 110, Height: 20},
			"0", "99999",
			float32(params.Seed), 0, 99999,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Seed), panelX+panelWidth-70, int32(y+2), 16, rl.DarkGray)
		if uint64(newSeed) != params.Seed {
			params.Seed = uint64(newSeed)
			needsRegen = true
		}
		y += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: y, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = uint64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: y, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			needsRegen = true
		}
		y += 55

		rl.DrawText("YAML Config:", panelX, int32(y), 16, rl.DarkGray)
		y += 25
		for _, line := range yamlLines(params) {
			rl.DrawText(line, panelX, int32(y), 14, rl.Gray)
			y += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", panelX, windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			text := ""
			for _, line := range yamlLines(params) {
				text += line + "\n"
			}
			rl.SetClipboardText(text)
		}

		rl.EndDrawing()
	}
}

// generate draws params.Samples scalars in [0,1] from a fresh sampler.
func generate(params PreviewParams) []float32 {
	s := systems.NewSampler(params.Seed, params.Mode)
	s.SetNoiseStep(float64(params.NoiseStep))

	values := make([]float32, params.Samples)
	for i := range values {
		values[i] = s.SampleScalar(0, 1)
	}
	return values
}

func histogram(values []float32, bins int) []int {
	counts := make([]int, bins)
	for _, v := range values {
		b := int(v * float32(bins))
		if b >= bins {
			b = bins - 1
		}
		if b < 0 {
			b = 0
		}
		counts[b]++
	}
	return counts
}

func summarize(values []float32) (mean, lo, hi float32) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	lo, hi = values[0], values[0]
	var sum float32
	for _, v := range values {
		sum += v
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return sum / float32(len(values)), lo, hi
}

// meanAbsDelta is small for coherent modes and about 1/3 for uniform.
func meanAbsDelta(values []float32) float32 {
	if len(values) < 2 {
		return 0
	}
	var sum float32
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float32(len(values)-1)
}

func yamlLines(params PreviewParams) []string {
	return []string{
		"sampler:",
		fmt.Sprintf("  mode: %s", params.Mode),
		fmt.Sprintf("  seed: %d", params.Seed),
		fmt.Sprintf("  noise_step: %.3f", params.NoiseStep),
	}
}

func drawSeries(values []float32, x, y int32) {
	rl.DrawRectangleLines(x, y, plotWidth, plotHeight, rl.DarkGray)
	for i := 1; i < len(values); i++ {
		x0 := x + int32(i-1)*plotWidth/int32(len(values))
		x1 := x + int32(i)*plotWidth/int32(len(values))
		y0 := y + plotHeight - int32(values[i-1]*plotHeight)
		y1 := y + plotHeight - int32(values[i]*plotHeight)
		rl.DrawLine(x0, y0, x1, y1, rl.Maroon)
	}
}

func drawHistogram(counts []int, x, y int32) {
	height := int32(2 * plotHeight / 3)
	rl.DrawRectangleLines(x, y, plotWidth, height, rl.DarkGray)

	peak := 1
	for _, c := range counts {
		peak = max(peak, c)
	}
	barW := int32(plotWidth / len(counts))
	for i, c := range counts {
		h := int32(c) * (height - 4) / int32(peak)
		rl.DrawRectangle(x+int32(i)*barW+1, y+height-h, barW-2, h, rl.SkyBlue)
	}
}
