package systems

import "github.com/pthm-cable/sparks/components"

// ParticlePool stores live particles as parallel per-field slices.
// Every slice always has length Count(). Indices are only meaningful until
// the next Step or SwapRemove call.
type ParticlePool struct {
	positions  []components.Vec2
	velocities []components.Vec2
	scales     []components.Vec2
	colors     []components.Color
	lifetimes  []float32
	remaining  []float32

	// Culling rectangle is [0,width] x [0,height]
	width, height float32
}

// NewParticlePool creates an empty pool that culls outside [0,width]x[0,height].
func NewParticlePool(width, height float32) ParticlePool {
	return ParticlePool{width: width, height: height}
}

// Reserve pre-allocates room for capacity particles.
func (p *ParticlePool) Reserve(capacity int) {
	if capacity <= cap(p.positions) {
		return
	}
	p.positions = grow(p.positions, capacity)
	p.velocities = grow(p.velocities, capacity)
	p.scales = grow(p.scales, capacity)
	p.colors = grow(p.colors, capacity)
	p.lifetimes = grow(p.lifetimes, capacity)
	p.remaining = grow(p.remaining, capacity)
}

func grow[T any](s []T, capacity int) []T {
	out := make([]T, len(s), capacity)
	copy(out, s)
	return out
}

// Spawn appends a particle with unit scale and remaining time equal to lifetime.
func (p *ParticlePool) Spawn(position, velocity components.Vec2, color components.Color, lifetime float32) {
	p.positions = append(p.positions, position)
	p.velocities = append(p.velocities, velocity)
	p.scales = append(p.scales, components.One2)
	p.colors = append(p.colors, color)
	p.lifetimes = append(p.lifetimes, lifetime)
	p.remaining = append(p.remaining, lifetime)
}

// Step ages and moves every particle by dt, then culls expired and
// out-of-bounds particles. Returns the number of particles removed.
func (p *ParticlePool) Step(dt float32) int {
	culled := 0

	// Walk from the back: a swap only ever pulls in an element from a higher
	// index, which this pass has already processed.
	for i := len(p.positions) - 1; i >= 0; i-- {
		p.remaining[i] -= dt
		p.positions[i] = p.positions[i].Add(p.velocities[i].Scale(dt))

		if p.remaining[i] <= 0 || !p.inBounds(p.positions[i]) {
			p.SwapRemove(i)
			culled++
		}
	}

	return culled
}

// SwapRemove removes particle i by moving the last particle into its slot.
// After a move the particle that was at index moved is identified by i; the
// result is (moved, true). It returns (-1, false) when i was the last
// particle (nothing moved) or out of range.
func (p *ParticlePool) SwapRemove(i int) (moved int, ok bool) {
	last := len(p.positions) - 1
	if i < 0 || i > last {
		return -1, false
	}

	if i != last {
		p.positions[i] = p.positions[last]
		p.velocities[i] = p.velocities[last]
		p.scales[i] = p.scales[last]
		p.colors[i] = p.colors[last]
		p.lifetimes[i] = p.lifetimes[last]
		p.remaining[i] = p.remaining[last]
		moved, ok = last, true
	} else {
		moved = -1
	}

	p.positions = p.positions[:last]
	p.velocities = p.velocities[:last]
	p.scales = p.scales[:last]
	p.colors = p.colors[:last]
	p.lifetimes = p.lifetimes[:last]
	p.remaining = p.remaining[:last]

	return moved, ok
}

func (p *ParticlePool) inBounds(v components.Vec2) bool {
	return v.X >= 0 && v.X <= p.width && v.Y >= 0 && v.Y <= p.height
}

// Clear removes all particles, keeping allocated capacity.
func (p *ParticlePool) Clear() {
	p.positions = p.positions[:0]
	p.velocities = p.velocities[:0]
	p.scales = p.scales[:0]
	p.colors = p.colors[:0]
	p.lifetimes = p.lifetimes[:0]
	p.remaining = p.remaining[:0]
}

// Count returns the number of live particles.
func (p *ParticlePool) Count() int {
	return len(p.positions)
}

// Bounds returns the culling rectangle size.
func (p *ParticlePool) Bounds() (width, height float32) {
	return p.width, p.height
}

// Position returns the position of particle i.
func (p *ParticlePool) Position(i int) components.Vec2 { return p.positions[i] }

// Velocity returns the velocity of particle i.
func (p *ParticlePool) Velocity(i int) components.Vec2 { return p.velocities[i] }

// Scale returns the scale of particle i.
func (p *ParticlePool) Scale(i int) components.Vec2 { return p.scales[i] }

// SetScale replaces the scale of particle i.
func (p *ParticlePool) SetScale(i int, s components.Vec2) { p.scales[i] = s }

// Color returns the color of particle i.
func (p *ParticlePool) Color(i int) components.Color { return p.colors[i] }

// Lifetime returns the lifetime particle i was spawned with.
func (p *ParticlePool) Lifetime(i int) float32 { return p.lifetimes[i] }

// Remaining returns the seconds particle i has left.
func (p *ParticlePool) Remaining(i int) float32 { return p.remaining[i] }

// Read-only views of the backing slices, index-aligned with each other.
// Callers must not modify or retain them past the next Step.

// Positions returns the position slice.
func (p *ParticlePool) Positions() []components.Vec2 { return p.positions }

// Velocities returns the velocity slice.
func (p *ParticlePool) Velocities() []components.Vec2 { return p.velocities }

// Scales returns the scale slice.
func (p *ParticlePool) Scales() []components.Vec2 { return p.scales }

// Colors returns the color slice.
func (p *ParticlePool) Colors() []components.Color { return p.colors }

// Lifetimes returns the lifetime slice.
func (p *ParticlePool) Lifetimes() []float32 { return p.lifetimes }

// RemainingTimes returns the remaining-time slice.
func (p *ParticlePool) RemainingTimes() []float32 { return p.remaining }
