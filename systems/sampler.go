package systems

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/sparks/components"
)

// SamplerMode selects the distribution used by Sampler.SampleScalar.
type SamplerMode uint8

const (
	ModeUniform  SamplerMode = iota // Independent uniform draws
	ModeGaussian                    // Normal variate, [min,max] is the 3-sigma band
	ModePerlin                      // 1D Perlin noise along an advancing index
	ModeSimplex                     // OpenSimplex noise along the same index
)

// DefaultNoiseStep is how far the noise index advances per coherent sample.
const DefaultNoiseStep = 0.05

// SamplerModes lists every mode in cycling order.
var SamplerModes = []SamplerMode{ModeUniform, ModeGaussian, ModePerlin, ModeSimplex}

var modeNames = [...]string{
	ModeUniform:  "uniform",
	ModeGaussian: "gaussian",
	ModePerlin:   "perlin",
	ModeSimplex:  "simplex",
}

// String returns the lowercase mode name.
func (m SamplerMode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", uint8(m))
}

// Coherent reports whether successive samples are correlated.
func (m SamplerMode) Coherent() bool {
	return m == ModePerlin || m == ModeSimplex
}

// Next cycles to the following mode, wrapping after the last one.
func (m SamplerMode) Next() SamplerMode {
	return (m + 1) % SamplerMode(len(modeNames))
}

// ParseMode converts a mode name to a SamplerMode.
func ParseMode(name string) (SamplerMode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(name, n) {
			return SamplerMode(i), nil
		}
	}
	return ModeUniform, fmt.Errorf("unknown sampler mode %q", name)
}

// Sampler produces scalars and vectors under a selectable distribution.
// All state is owned by the instance; it is not safe for concurrent use.
type Sampler struct {
	mode SamplerMode
	seed uint64
	rng  *rand.Rand

	// Coherent noise sources, built on first use
	perlin  *PerlinNoise
	simplex opensimplex.Noise

	noiseIndex float64
	noiseStep  float64
}

// NewSampler creates a sampler seeded with seed.
func NewSampler(seed uint64, mode SamplerMode) *Sampler {
	return &Sampler{
		mode:      mode,
		seed:      seed,
		rng:       rand.New(rand.NewPCG(seed, seed>>1|1)),
		noiseStep: DefaultNoiseStep,
	}
}

// Mode returns the current distribution mode.
func (s *Sampler) Mode() SamplerMode {
	return s.mode
}

// SetMode selects the distribution mode.
func (s *Sampler) SetMode(m SamplerMode) {
	s.mode = m
}

// Seed returns the seed the sampler was created with.
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// SetNoiseStep sets the index advance per coherent sample. Smaller steps give
// more strongly correlated neighbours. Non-positive values restore the default.
func (s *Sampler) SetNoiseStep(step float64) {
	if step <= 0 {
		step = DefaultNoiseStep
	}
	s.noiseStep = step
}

// NoiseIndex returns the current coherent noise index.
func (s *Sampler) NoiseIndex() float64 {
	return s.noiseIndex
}

// ResetNoiseIndex rewinds the coherent noise sequence. Call it before starting
// an independent sequence so it does not continue the previous one.
func (s *Sampler) ResetNoiseIndex() {
	s.noiseIndex = 0
}

// SampleScalar returns a value in [min, max] drawn from the current mode.
// min > max is a caller error and yields an unspecified value.
func (s *Sampler) SampleScalar(min, max float32) float32 {
	lo, hi := float64(min), float64(max)

	switch s.mode {
	case ModeGaussian:
		mean := (lo + hi) / 2
		sigma := (hi - lo) / 6
		v := mean + sigma*s.rng.NormFloat64()
		return float32(clamp(v, lo, hi))

	case ModePerlin:
		t := (s.perlinNoise().Noise1D(s.advance()) + 1) / 2
		return float32(lo + clamp(t, 0, 1)*(hi-lo))

	case ModeSimplex:
		t := s.simplexNoise().Eval2(s.advance(), 0)
		return float32(lo + clamp(t, 0, 1)*(hi-lo))

	default:
		return float32(lo + s.rng.Float64()*(hi-lo))
	}
}

// SampleUnsigned returns an integer in [min, max] drawn from the current mode,
// for byte channels such as color components.
func (s *Sampler) SampleUnsigned(min, max uint8) uint8 {
	if s.mode == ModeUniform {
		return min + uint8(s.rng.IntN(int(max)-int(min)+1))
	}
	v := math.Round(float64(s.SampleScalar(float32(min), float32(max))))
	return uint8(clamp(v, float64(min), float64(max)))
}

// SampleVector samples each axis independently.
func (s *Sampler) SampleVector(minX, maxX, minY, maxY float32) components.Vec2 {
	return components.Vec2{
		X: s.SampleScalar(minX, maxX),
		Y: s.SampleScalar(minY, maxY),
	}
}

// SampleDirectional returns direction rotated by a sampled offset within
// [-spread/2, +spread/2]. The result keeps the length of direction.
// A zero direction yields a unit vector at a uniform angle over the full circle.
func (s *Sampler) SampleDirectional(direction components.Vec2, spread float32) components.Vec2 {
	if direction.IsZero() {
		angle := s.rng.Float64() * 2 * math.Pi
		return components.FromAngle(float32(angle), 1)
	}

	offset := s.SampleScalar(-spread/2, spread/2)
	return components.FromAngle(direction.Angle()+offset, direction.Len())
}

// advance returns the current noise index and moves it forward one step.
func (s *Sampler) advance() float64 {
	x := s.noiseIndex
	s.noiseIndex += s.noiseStep
	return x
}

func (s *Sampler) perlinNoise() *PerlinNoise {
	if s.perlin == nil {
		s.perlin = NewPerlinNoise(s.seed)
	}
	return s.perlin
}

func (s *Sampler) simplexNoise() opensimplex.Noise {
	if s.simplex == nil {
		s.simplex = opensimplex.NewNormalized(int64(s.seed))
	}
	return s.simplex
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
