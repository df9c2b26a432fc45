package systems

import (
	"testing"

	"github.com/pthm-cable/sparks/components"
)

func TestSystemSpawnForwardsToPool(t *testing.T) {
	s := NewParticleSystem(100, 100)
	s.Initialize(32)

	for i := 0; i < 5; i++ {
		s.Spawn(vec(10, 10), vec(1, 1), components.White, 2)
	}
	if s.Count() != 5 || s.Pool().Count() != 5 {
		t.Errorf("Count() = %d, pool = %d, want 5", s.Count(), s.Pool().Count())
	}
}

func TestSystemCullsOutOfBounds(t *testing.T) {
	s := NewParticleSystem(100, 100)
	s.Spawn(vec(50, 50), vec(1000, 0), components.White, 10)

	s.Update(1.0)

	if s.Count() != 0 {
		t.Errorf("Count() = %d, want 0", s.Count())
	}
	if got := s.LastFrame().Culled; got != 1 {
		t.Errorf("LastFrame().Culled = %d, want 1", got)
	}
}

func TestSystemEmitterLifecycle(t *testing.T) {
	s := NewParticleSystem(1000, 1000)
	sampler := NewSampler(1, ModeUniform)

	e := s.NewEmitter(sampler, vec(500, 500))
	e.SetDuration(1)
	e.SetEmissionRate(10)
	e.SetLifetimeRange(5, 5)
	id := s.SpawnEmitter(e)

	if id == 0 || e.ID() != id {
		t.Fatalf("SpawnEmitter id = %d, emitter id = %d", id, e.ID())
	}
	if s.Emitter(id) != e {
		t.Fatal("Emitter(id) did not return the spawned emitter")
	}

	var evicted []EmitterID
	s.OnEvict(func(e *Emitter) { evicted = append(evicted, e.ID()) })

	spawned := 0
	for i := 0; i < 15; i++ {
		s.Update(0.0625)
		spawned += s.LastFrame().Spawned
	}
	if s.EmitterCount() != 1 {
		t.Fatalf("emitter evicted early at elapsed %v", e.Elapsed())
	}

	s.Update(0.0625)
	spawned += s.LastFrame().Spawned
	if s.EmitterCount() != 0 {
		t.Fatalf("EmitterCount() = %d after duration, want 0", s.EmitterCount())
	}
	if s.LastFrame().Evicted != 1 {
		t.Errorf("LastFrame().Evicted = %d, want 1", s.LastFrame().Evicted)
	}
	if len(evicted) != 1 || evicted[0] != id {
		t.Errorf("OnEvict saw %v, want [%d]", evicted, id)
	}
	if s.Emitter(id) != nil {
		t.Error("evicted emitter still reachable")
	}

	if spawned != e.Emitted() || s.Count() != spawned {
		t.Errorf("spawned %d, emitter counted %d, pool holds %d", spawned, e.Emitted(), s.Count())
	}

	// Particles outlive their emitter.
	before := s.Count()
	s.Update(0.0625)
	if s.Count() != before || s.LastFrame().Spawned != 0 {
		t.Errorf("count %d -> %d, spawned %d after eviction", before, s.Count(), s.LastFrame().Spawned)
	}
}

func TestSystemEvictsSeveralEmittersInOneUpdate(t *testing.T) {
	s := NewParticleSystem(100, 100)
	sampler := NewSampler(2, ModeUniform)

	durations := []float32{0.1, 5, 0.1, 0.1, 5}
	ids := make([]EmitterID, len(durations))
	for i, d := range durations {
		e := s.NewEmitter(sampler, vec(50, 50))
		e.SetDuration(d)
		ids[i] = s.SpawnEmitter(e)
	}

	updated := make(map[EmitterID]float32)
	s.Update(0.1)
	s.Emitters(func(e *Emitter) { updated[e.ID()] = e.Elapsed() })

	if s.EmitterCount() != 2 {
		t.Fatalf("EmitterCount() = %d, want 2", s.EmitterCount())
	}
	for _, i := range []int{1, 4} {
		elapsed, ok := updated[ids[i]]
		if !ok {
			t.Errorf("long-lived emitter %d was evicted", ids[i])
			continue
		}
		if elapsed != 0.1 {
			t.Errorf("emitter %d elapsed = %v, want 0.1 (updated exactly once)", ids[i], elapsed)
		}
	}
}

func TestSystemKeepsFieldsAligned(t *testing.T) {
	s := NewParticleSystem(200, 200)
	sampler := NewSampler(3, ModeGaussian)

	for i := 0; i < 4; i++ {
		e := s.NewEmitter(sampler, vec(100, 100))
		e.SetEmissionRate(60)
		e.SetParticlesPerEmission(4)
		e.SetLifetimeRange(0.1, 0.6)
		e.SetSpeedRange(50, 400)
		s.SpawnEmitter(e)
	}

	for frame := 0; frame < 120; frame++ {
		s.Update(1.0 / 60)
		checkAligned(t, s.Pool())

		w, h := s.Pool().Bounds()
		for i, p := range s.Pool().Positions() {
			if p.X < 0 || p.X > w || p.Y < 0 || p.Y > h {
				t.Fatalf("frame %d: particle %d at %+v outside bounds", frame, i, p)
			}
			if s.Pool().Remaining(i) <= 0 {
				t.Fatalf("frame %d: particle %d has remaining %v", frame, i, s.Pool().Remaining(i))
			}
		}
	}
}

func TestSystemClear(t *testing.T) {
	s := NewParticleSystem(100, 100)
	e := s.NewEmitter(NewSampler(4, ModeUniform), vec(50, 50))
	s.SpawnEmitter(e)
	s.Spawn(vec(1, 1), vec(0, 0), components.White, 1)

	s.Clear()
	if s.Count() != 0 || s.EmitterCount() != 0 {
		t.Errorf("Clear left %d particles and %d emitters", s.Count(), s.EmitterCount())
	}
}
