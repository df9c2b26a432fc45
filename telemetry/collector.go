package telemetry

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameSample holds what one ParticleSystem.Update did.
type FrameSample struct {
	DT        float32
	Particles int
	Spawned   int
	Culled    int
	Evicted   int
}

// Collector accumulates frames within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec float64

	// Current window tracking
	windowStartFrame int64
	windowStartTime  float64
	frame            int64
	simTime          float64

	// Event counters for current window
	spawned       int
	culled        int
	emittersAdded int
	evicted       int

	// Per-frame particle counts for current window
	counts []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
func NewCollector(windowDurationSec float64) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 1
	}
	return &Collector{
		windowDurationSec: windowDurationSec,
		counts:            make([]float64, 0, 256),
	}
}

// RecordFrame adds one simulation frame to the current window.
func (c *Collector) RecordFrame(f FrameSample) {
	c.frame++
	c.simTime += float64(f.DT)

	c.spawned += f.Spawned
	c.culled += f.Culled
	c.evicted += f.Evicted
	c.counts = append(c.counts, float64(f.Particles))
}

// RecordEmitterAdded records an emitter handed to the system.
func (c *Collector) RecordEmitterAdded() {
	c.emittersAdded++
}

// ShouldFlush returns true once the window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTime-c.windowStartTime >= c.windowDurationSec
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the population at window end and the remaining
// lifetimes of live particles for the distribution columns.
func (c *Collector) Flush(particles, emitters int, remaining []float32) WindowStats {
	rem := make([]float64, len(remaining))
	for i, r := range remaining {
		rem[i] = float64(r)
	}
	remMean, remP10, remP50, remP90 := ComputeDistribution(rem)

	var countMean, countStd float64
	var countMax int
	if len(c.counts) > 0 {
		countMean, countStd = stat.PopMeanStdDev(c.counts, nil)
		countMax = int(floats.Max(c.counts))
	}

	elapsed := c.simTime - c.windowStartTime
	var spawnRate, cullRate float64
	if elapsed > 0 {
		spawnRate = float64(c.spawned) / elapsed
		cullRate = float64(c.culled) / elapsed
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.simTime,
		Frames:           len(c.counts),

		Particles: particles,
		Emitters:  emitters,

		Spawned:         c.spawned,
		Culled:          c.culled,
		EmittersAdded:   c.emittersAdded,
		EmittersEvicted: c.evicted,

		CountMean: countMean,
		CountStd:  countStd,
		CountMax:  countMax,

		RemainingMean: remMean,
		RemainingP10:  remP10,
		RemainingP50:  remP50,
		RemainingP90:  remP90,

		SpawnRate: spawnRate,
		CullRate:  cullRate,
	}

	// Reset for next window
	c.windowStartFrame = c.frame
	c.windowStartTime = c.simTime
	c.spawned = 0
	c.culled = 0
	c.emittersAdded = 0
	c.evicted = 0
	c.counts = c.counts[:0]

	return stats
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int64 {
	return c.frame
}

// SimTime returns the simulated seconds recorded so far.
func (c *Collector) SimTime() float64 {
	return c.simTime
}
