// Package systems implements the particle engine core: sampling, the
// particle pool, emitters and the owning particle system.
package systems

import (
	"log/slog"

	"github.com/pthm-cable/sparks/components"
)

// FrameStats counts what happened during the most recent Update.
type FrameStats struct {
	Spawned int
	Culled  int
	Evicted int
}

// ParticleSystem owns one particle pool and the emitters that feed it.
// It is the Sink its emitters spawn into.
type ParticleSystem struct {
	pool     ParticlePool
	emitters []*Emitter
	nextID   EmitterID

	frame   FrameStats
	onEvict func(*Emitter)
}

// NewParticleSystem creates a system whose particles live in [0,width]x[0,height].
func NewParticleSystem(width, height float32) *ParticleSystem {
	return &ParticleSystem{
		pool:   NewParticlePool(width, height),
		nextID: 1,
	}
}

// Initialize reserves pool storage for the expected particle volume.
func (s *ParticleSystem) Initialize(capacity int) {
	s.pool.Reserve(capacity)
}

// SpawnEmitter takes ownership of e and returns the ID assigned to it.
// The emitter's sink is not changed; build it with the system as sink.
func (s *ParticleSystem) SpawnEmitter(e *Emitter) EmitterID {
	e.id = s.nextID
	s.nextID++
	s.emitters = append(s.emitters, e)
	return e.id
}

// NewEmitter creates an emitter that spawns into this system.
// The emitter is not owned until passed to SpawnEmitter.
func (s *ParticleSystem) NewEmitter(sampler *Sampler, position components.Vec2) *Emitter {
	return NewEmitter(s, sampler, position)
}

// Spawn adds one particle to the pool.
func (s *ParticleSystem) Spawn(position, velocity components.Vec2, color components.Color, lifetime float32) {
	s.pool.Spawn(position, velocity, color, lifetime)
	s.frame.Spawned++
}

// OnEvict registers fn to be called with each emitter just before it is released.
func (s *ParticleSystem) OnEvict(fn func(*Emitter)) {
	s.onEvict = fn
}

// Update steps the pool, then runs every emitter and evicts expired ones.
func (s *ParticleSystem) Update(dt float32) {
	s.frame = FrameStats{}
	s.frame.Culled = s.pool.Step(dt)

	// Reverse walk so removal by swap does not skip an emitter.
	for i := len(s.emitters) - 1; i >= 0; i-- {
		e := s.emitters[i]
		e.Update(dt)
		if !e.Expired() {
			continue
		}

		if s.onEvict != nil {
			s.onEvict(e)
		}
		slog.Debug("emitter evicted", "id", e.id, "emitted", e.emitted, "elapsed", e.elapsed)

		last := len(s.emitters) - 1
		s.emitters[i] = s.emitters[last]
		s.emitters[last] = nil
		s.emitters = s.emitters[:last]
		e.sink = nil
		s.frame.Evicted++
	}
}

// Clear drops every particle and emitter.
func (s *ParticleSystem) Clear() {
	s.pool.Clear()
	for i := range s.emitters {
		s.emitters[i].sink = nil
		s.emitters[i] = nil
	}
	s.emitters = s.emitters[:0]
}

// Pool returns the particle pool for read-only use.
func (s *ParticleSystem) Pool() *ParticlePool {
	return &s.pool
}

// Count returns the number of live particles.
func (s *ParticleSystem) Count() int {
	return s.pool.Count()
}

// EmitterCount returns the number of owned emitters.
func (s *ParticleSystem) EmitterCount() int {
	return len(s.emitters)
}

// Emitter returns the owned emitter with the given ID, or nil.
func (s *ParticleSystem) Emitter(id EmitterID) *Emitter {
	for _, e := range s.emitters {
		if e.id == id {
			return e
		}
	}
	return nil
}

// Emitters calls fn for each owned emitter. fn must not spawn or evict.
func (s *ParticleSystem) Emitters(fn func(*Emitter)) {
	for _, e := range s.emitters {
		fn(e)
	}
}

// LastFrame returns the counters of the most recent Update.
func (s *ParticleSystem) LastFrame() FrameStats {
	return s.frame
}
