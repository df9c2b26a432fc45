package telemetry

import (
	"testing"
	"time"
)

// fakeClock advances only when told to.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestPerf(window int) (*PerfCollector, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	pc := NewPerfCollector(window)
	pc.now = clock.now
	return pc, clock
}

func TestPerfCollectorPhases(t *testing.T) {
	pc, clock := newTestPerf(10)

	for i := 0; i < 5; i++ {
		pc.StartStep()
		pc.StartPhase(PhaseInput)
		clock.advance(100 * time.Microsecond)
		pc.StartPhase(PhaseSimulate)
		clock.advance(300 * time.Microsecond)
		pc.EndStep()
	}

	stats := pc.Stats()
	if stats.AvgStep != 400*time.Microsecond {
		t.Errorf("AvgStep = %v, want 400µs", stats.AvgStep)
	}
	if stats.PhaseAvg[PhaseSimulate] != 300*time.Microsecond {
		t.Errorf("simulate avg = %v, want 300µs", stats.PhaseAvg[PhaseSimulate])
	}
	if pct := stats.PhasePct[PhaseInput]; pct != 25 {
		t.Errorf("input pct = %v, want 25", pct)
	}
	if stats.StepsPerSecond != 2500 {
		t.Errorf("StepsPerSecond = %v, want 2500", stats.StepsPerSecond)
	}
}

func TestPerfCollectorRollingWindow(t *testing.T) {
	pc, clock := newTestPerf(3)

	durations := []time.Duration{10, 20, 30, 40, 50}
	for _, d := range durations {
		pc.StartStep()
		clock.advance(d * time.Millisecond)
		pc.EndStep()
	}

	// Only the last three steps remain in the window.
	stats := pc.Stats()
	if stats.MinStep != 30*time.Millisecond || stats.MaxStep != 50*time.Millisecond {
		t.Errorf("min/max = %v/%v, want 30ms/50ms", stats.MinStep, stats.MaxStep)
	}
	if stats.AvgStep != 40*time.Millisecond {
		t.Errorf("AvgStep = %v, want 40ms", stats.AvgStep)
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	pc := NewPerfCollector(0)
	stats := pc.Stats()

	if stats.AvgStep != 0 || stats.StepsPerSecond != 0 {
		t.Error("expected zero stats for empty collector")
	}
	if stats.PhaseAvg == nil || stats.PhasePct == nil {
		t.Error("expected non-nil phase maps")
	}
}

func TestPerfCollectorFrameTiming(t *testing.T) {
	pc, clock := newTestPerf(10)

	pc.RecordFrame()
	clock.advance(20 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()
	if stats.FrameDuration != 20*time.Millisecond {
		t.Errorf("FrameDuration = %v, want 20ms", stats.FrameDuration)
	}
	if stats.FPS != 50 {
		t.Errorf("FPS = %v, want 50", stats.FPS)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	pc, clock := newTestPerf(4)
	pc.StartStep()
	pc.StartPhase(PhaseSimulate)
	clock.advance(time.Millisecond)
	pc.StartPhase(PhaseTelemetry)
	clock.advance(time.Millisecond)
	pc.EndStep()

	rec := pc.Stats().ToCSV(99)
	if rec.WindowEnd != 99 || rec.AvgStepUS != 2000 {
		t.Errorf("record = %+v", rec)
	}
	if rec.SimulatePct != 50 || rec.TelemetryPct != 50 || rec.InputPct != 0 {
		t.Errorf("phase pct = %v/%v/%v", rec.InputPct, rec.SimulatePct, rec.TelemetryPct)
	}
}
