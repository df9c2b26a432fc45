package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0)

	counts := []int{10, 20, 30, 40}
	for _, n := range counts {
		if c.ShouldFlush() {
			t.Fatal("flush requested before window elapsed")
		}
		c.RecordFrame(FrameSample{DT: 0.25, Particles: n, Spawned: 5, Culled: 2})
	}
	c.RecordEmitterAdded()
	c.RecordFrame(FrameSample{DT: 0, Particles: 40, Evicted: 1})

	if !c.ShouldFlush() {
		t.Fatal("expected flush after 1s of frames")
	}

	stats := c.Flush(40, 3, []float32{1, 2, 3, 4, 5})

	if stats.WindowStartFrame != 0 || stats.WindowEndFrame != 5 || stats.Frames != 5 {
		t.Errorf("window frames = %d..%d (%d)", stats.WindowStartFrame, stats.WindowEndFrame, stats.Frames)
	}
	if stats.Spawned != 20 || stats.Culled != 8 || stats.EmittersEvicted != 1 || stats.EmittersAdded != 1 {
		t.Errorf("events = %+v", stats)
	}
	if stats.Particles != 40 || stats.Emitters != 3 {
		t.Errorf("population = %d/%d", stats.Particles, stats.Emitters)
	}
	if math.Abs(stats.CountMean-28) > 1e-9 || stats.CountMax != 40 {
		t.Errorf("count mean/max = %v/%d, want 28/40", stats.CountMean, stats.CountMax)
	}
	// Population std of {10,20,30,40,40}
	if math.Abs(stats.CountStd-math.Sqrt(136)) > 1e-9 {
		t.Errorf("count std = %v, want %v", stats.CountStd, math.Sqrt(136))
	}
	if stats.RemainingMean != 3 || stats.RemainingP50 != 3 {
		t.Errorf("remaining mean/p50 = %v/%v", stats.RemainingMean, stats.RemainingP50)
	}
	if stats.SpawnRate != 20 || stats.CullRate != 8 {
		t.Errorf("rates = %v/%v, want 20/8", stats.SpawnRate, stats.CullRate)
	}

	// Counters reset for the next window.
	if c.ShouldFlush() {
		t.Error("flush requested right after Flush")
	}
	c.RecordFrame(FrameSample{DT: 0.5, Particles: 1})
	next := c.Flush(1, 0, nil)
	if next.WindowStartFrame != 5 || next.Spawned != 0 || next.Frames != 1 {
		t.Errorf("next window = %+v", next)
	}
	if next.SimTimeSec != 1.5 {
		t.Errorf("sim time = %v, want 1.5", next.SimTimeSec)
	}
}

func TestCollectorEmptyFlush(t *testing.T) {
	c := NewCollector(0)
	stats := c.Flush(0, 0, nil)
	if stats.Frames != 0 || stats.CountMean != 0 || stats.SpawnRate != 0 {
		t.Errorf("empty flush = %+v", stats)
	}
}
