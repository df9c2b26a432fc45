package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/pthm-cable/sparks/components"
)

func drawScalars(s *Sampler, n int, min, max float32) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(s.SampleScalar(min, max))
	}
	return out
}

func TestSampleScalarUniform(t *testing.T) {
	s := NewSampler(1, ModeUniform)
	values := drawScalars(s, 10000, 0, 10)

	for i, v := range values {
		if v < 0 || v > 10 {
			t.Fatalf("sample %d = %v, outside [0, 10]", i, v)
		}
	}

	mean := stat.Mean(values, nil)
	if math.Abs(mean-5) > 0.2 {
		t.Errorf("uniform mean = %v, want ~5", mean)
	}
	// Uniform variance over width 10 is 100/12.
	if sd := stat.StdDev(values, nil); math.Abs(sd-math.Sqrt(100.0/12)) > 0.15 {
		t.Errorf("uniform std = %v, want ~%v", sd, math.Sqrt(100.0/12))
	}
}

func TestSampleScalarGaussian(t *testing.T) {
	s := NewSampler(2, ModeGaussian)
	values := drawScalars(s, 10000, 0, 10)

	ref := distuv.Normal{Mu: 5, Sigma: 10.0 / 6}
	wantInside := ref.CDF(10) - ref.CDF(0)

	inside := 0
	for i, v := range values {
		if v < 0 || v > 10 {
			t.Fatalf("sample %d = %v, not clamped into [0, 10]", i, v)
		}
		if v > 0 && v < 10 {
			inside++
		}
	}

	if mean := stat.Mean(values, nil); math.Abs(mean-5) > 0.1 {
		t.Errorf("gaussian mean = %v, want ~5", mean)
	}
	if sd := stat.StdDev(values, nil); math.Abs(sd-10.0/6) > 0.1 {
		t.Errorf("gaussian std = %v, want ~%v", sd, 10.0/6)
	}

	frac := float64(inside) / float64(len(values))
	if math.Abs(frac-wantInside) > 0.005 {
		t.Errorf("fraction inside band = %v, want ~%v", frac, wantInside)
	}
}

func TestSampleScalarGaussianDegenerateRange(t *testing.T) {
	s := NewSampler(3, ModeGaussian)
	for i := 0; i < 100; i++ {
		if v := s.SampleScalar(4, 4); v != 4 {
			t.Fatalf("SampleScalar(4, 4) = %v, want 4", v)
		}
	}
}

func meanAbsStep(values []float64) float64 {
	var sum float64
	for i := 1; i < len(values); i++ {
		sum += math.Abs(values[i] - values[i-1])
	}
	return sum / float64(len(values)-1)
}

func TestSampleScalarCoherent(t *testing.T) {
	uniform := meanAbsStep(drawScalars(NewSampler(4, ModeUniform), 2000, 0, 10))

	for _, mode := range []SamplerMode{ModePerlin, ModeSimplex} {
		t.Run(mode.String(), func(t *testing.T) {
			s := NewSampler(4, mode)
			values := drawScalars(s, 2000, 0, 10)

			for i, v := range values {
				if v < 0 || v > 10 {
					t.Fatalf("sample %d = %v, outside [0, 10]", i, v)
				}
			}

			step := meanAbsStep(values)
			if step >= uniform/2 {
				t.Errorf("mean step %v not smoother than uniform %v", step, uniform)
			}
			if step == 0 {
				t.Error("coherent samples never changed")
			}

			if got := s.NoiseIndex(); math.Abs(got-2000*DefaultNoiseStep) > 1e-6 {
				t.Errorf("noise index = %v, want %v", got, 2000*DefaultNoiseStep)
			}
		})
	}
}

func TestResetNoiseIndexRepeatsSequence(t *testing.T) {
	for _, mode := range []SamplerMode{ModePerlin, ModeSimplex} {
		t.Run(mode.String(), func(t *testing.T) {
			s := NewSampler(5, mode)
			first := drawScalars(s, 50, -1, 1)
			s.ResetNoiseIndex()
			if s.NoiseIndex() != 0 {
				t.Fatalf("noise index = %v after reset", s.NoiseIndex())
			}
			second := drawScalars(s, 50, -1, 1)

			for i := range first {
				if first[i] != second[i] {
					t.Fatalf("sample %d: %v != %v after reset", i, first[i], second[i])
				}
			}
		})
	}
}

func TestNoiseTableIsLazy(t *testing.T) {
	s := NewSampler(6, ModeUniform)
	s.SampleScalar(0, 1)
	if s.perlin != nil {
		t.Fatal("permutation table built in uniform mode")
	}

	s.SetMode(ModePerlin)
	s.SampleScalar(0, 1)
	table := s.perlin
	if table == nil {
		t.Fatal("permutation table not built on first coherent sample")
	}

	s.SampleScalar(0, 1)
	if s.perlin != table {
		t.Error("permutation table rebuilt on later sample")
	}
}

func TestPerlinPermutationTable(t *testing.T) {
	p := NewPerlinNoise(42)

	seen := make(map[int]bool)
	for i := 0; i < 256; i++ {
		v := p.Perm(i)
		if v < 0 || v > 255 {
			t.Fatalf("perm[%d] = %d out of range", i, v)
		}
		if seen[v] {
			t.Fatalf("perm value %d repeated", v)
		}
		seen[v] = true

		if p.Perm(i+256) != v {
			t.Errorf("perm[%d] = %d, want duplicate %d", i+256, p.Perm(i+256), v)
		}
	}

	// A seeded shuffle should not be the identity.
	identity := true
	for i := 0; i < 256; i++ {
		if p.Perm(i) != i {
			identity = false
			break
		}
	}
	if identity {
		t.Error("permutation table was not shuffled")
	}
}

func TestPerlinNoiseRange(t *testing.T) {
	p := NewPerlinNoise(7)
	for x := -50.0; x < 50; x += 0.013 {
		n := p.Noise1D(x)
		if n < -1 || n > 1 {
			t.Fatalf("Noise1D(%v) = %v, outside [-1, 1]", x, n)
		}
	}
	if n := p.Noise1D(3); n != 0 {
		t.Errorf("Noise1D(3) = %v, want 0 at lattice point", n)
	}
}

func TestSampleVector(t *testing.T) {
	s := NewSampler(8, ModeUniform)
	for i := 0; i < 1000; i++ {
		v := s.SampleVector(0, 1, 100, 200)
		if v.X < 0 || v.X > 1 || v.Y < 100 || v.Y > 200 {
			t.Fatalf("SampleVector = %+v, outside ranges", v)
		}
	}
}

func TestSampleDirectionalIsotropic(t *testing.T) {
	s := NewSampler(9, ModeGaussian)
	const trials = 20000
	const bins = 8
	var counts [bins]int

	for i := 0; i < trials; i++ {
		v := s.SampleDirectional(components.Zero2, 0)
		if l := v.Len(); math.Abs(float64(l)-1) > 1e-4 {
			t.Fatalf("isotropic sample length = %v, want 1", l)
		}

		angle := math.Atan2(float64(v.Y), float64(v.X))
		if angle < 0 {
			angle += 2 * math.Pi
		}
		b := int(angle / (2 * math.Pi) * bins)
		if b == bins {
			b = bins - 1
		}
		counts[b]++
	}

	want := float64(trials) / bins
	for b, c := range counts {
		if math.Abs(float64(c)-want) > want*0.1 {
			t.Errorf("bin %d has %d samples, want ~%v", b, c, want)
		}
	}
}

func TestSampleDirectionalSpread(t *testing.T) {
	tests := []struct {
		name   string
		mode   SamplerMode
		dir    components.Vec2
		spread float32
	}{
		{"no spread", ModeUniform, components.Vec2{X: 3, Y: 4}, 0},
		{"quarter uniform", ModeUniform, components.Vec2{X: 0, Y: -2}, math.Pi / 2},
		{"quarter gaussian", ModeGaussian, components.Vec2{X: -1, Y: 0.5}, math.Pi / 2},
		{"quarter perlin", ModePerlin, components.Vec2{X: 10, Y: 0}, math.Pi / 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSampler(10, tt.mode)
			base := float64(tt.dir.Angle())
			wantLen := float64(tt.dir.Len())

			for i := 0; i < 500; i++ {
				v := s.SampleDirectional(tt.dir, tt.spread)

				if l := float64(v.Len()); math.Abs(l-wantLen) > 1e-3*wantLen {
					t.Fatalf("length = %v, want %v", l, wantLen)
				}

				off := math.Atan2(float64(v.Y), float64(v.X)) - base
				off = math.Remainder(off, 2*math.Pi)
				if math.Abs(off) > float64(tt.spread)/2+1e-4 {
					t.Fatalf("angle offset %v exceeds half spread %v", off, tt.spread/2)
				}
			}
		})
	}
}

func TestSamplerDeterministic(t *testing.T) {
	a := drawScalars(NewSampler(11, ModeGaussian), 100, 0, 1)
	b := drawScalars(NewSampler(11, ModeGaussian), 100, 0, 1)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for equal seeds: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    SamplerMode
		wantErr bool
	}{
		{"uniform", ModeUniform, false},
		{"Gaussian", ModeGaussian, false},
		{"PERLIN", ModePerlin, false},
		{"simplex", ModeSimplex, false},
		{"cauchy", ModeUniform, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if ModeSimplex.Next() != ModeUniform {
		t.Errorf("ModeSimplex.Next() = %v, want uniform", ModeSimplex.Next())
	}
}

func TestSampleUnsigned(t *testing.T) {
	for _, mode := range SamplerModes {
		t.Run(mode.String(), func(t *testing.T) {
			s := NewSampler(5, mode)
			seen := make(map[uint8]bool)
			for i := 0; i < 2000; i++ {
				v := s.SampleUnsigned(10, 20)
				if v < 10 || v > 20 {
					t.Fatalf("sample %d = %d, outside [10, 20]", i, v)
				}
				seen[v] = true
			}
			if len(seen) < 2 {
				t.Errorf("only %d distinct values", len(seen))
			}
		})
	}

	s := NewSampler(5, ModeUniform)
	if v := s.SampleUnsigned(0, 255); v > 255 {
		t.Errorf("full range sample = %d", v)
	}
	if v := s.SampleUnsigned(7, 7); v != 7 {
		t.Errorf("degenerate range = %d, want 7", v)
	}
}
