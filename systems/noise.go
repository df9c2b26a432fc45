package systems

import (
	"math"
	"math/rand/v2"
)

// PerlinNoise generates coherent noise values from a seeded permutation table.
type PerlinNoise struct {
	perm [512]int
}

// NewPerlinNoise creates a new Perlin noise generator.
func NewPerlinNoise(seed uint64) *PerlinNoise {
	p := &PerlinNoise{}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	// Initialize permutation table
	var perm [256]int
	for i := range perm {
		perm[i] = i
	}

	// Shuffle
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		perm[i], perm[j] = perm[j], perm[i]
	}

	// Duplicate
	for i := 0; i < 256; i++ {
		p.perm[i] = perm[i]
		p.perm[i+256] = perm[i]
	}

	return p
}

// Noise1D returns a noise value in [-1, 1] for coordinate x.
// The value is 0 at every integer lattice point.
func (p *PerlinNoise) Noise1D(x float64) float64 {
	X := int(math.Floor(x)) & 255
	x -= math.Floor(x)

	u := fade(x)
	// Gradients of +-1 bound the raw value to [-0.5, 0.5].
	return 2 * lerp(u, grad1D(p.perm[X], x), grad1D(p.perm[X+1], x-1))
}

// Perm returns the permutation entry at i (0 <= i < 512).
func (p *PerlinNoise) Perm(i int) int {
	return p.perm[i]
}

func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func grad1D(hash int, x float64) float64 {
	if hash&1 != 0 {
		return -x
	}
	return x
}
