package telemetry

import (
	"log/slog"
	"sort"
)

// EmitterRecord tracks one emitter from spawn to eviction.
type EmitterRecord struct {
	ID            uint32  `csv:"id"`
	Preset        string  `csv:"preset"`
	SpawnFrame    int64   `csv:"spawn_frame"`
	SpawnTime     float64 `csv:"spawn_time"`
	EvictFrame    int64   `csv:"evict_frame"`
	EvictTime     float64 `csv:"evict_time"`
	X             float32 `csv:"x"`
	Y             float32 `csv:"y"`
	Emitted       int     `csv:"emitted"`
	ActiveSec     float32 `csv:"active_sec"`
	EffectiveRate float64 `csv:"effective_rate"` // particles per second while active
}

// EmitterTracker manages per-emitter lifetime records.
type EmitterTracker struct {
	live map[uint32]*EmitterRecord
}

// NewEmitterTracker creates a new emitter tracker.
func NewEmitterTracker() *EmitterTracker {
	return &EmitterTracker{
		live: make(map[uint32]*EmitterRecord),
	}
}

// Register starts a record for a newly spawned emitter.
func (t *EmitterTracker) Register(id uint32, preset string, frame int64, simTime float64, x, y float32) {
	t.live[id] = &EmitterRecord{
		ID:         id,
		Preset:     preset,
		SpawnFrame: frame,
		SpawnTime:  simTime,
		X:          x,
		Y:          y,
	}
}

// Get returns the live record for an emitter, or nil if not found.
func (t *EmitterTracker) Get(id uint32) *EmitterRecord {
	return t.live[id]
}

// Complete closes the record of an evicted emitter and returns it.
// Returns nil for an emitter that was never registered.
func (t *EmitterTracker) Complete(id uint32, frame int64, simTime float64, emitted int, activeSec float32) *EmitterRecord {
	r := t.live[id]
	if r == nil {
		return nil
	}
	delete(t.live, id)

	r.EvictFrame = frame
	r.EvictTime = simTime
	r.Emitted = emitted
	r.ActiveSec = activeSec
	if activeSec > 0 {
		r.EffectiveRate = float64(emitted) / float64(activeSec)
	}

	slog.Debug("emitter complete",
		"id", r.ID,
		"preset", r.Preset,
		"emitted", r.Emitted,
		"active_sec", r.ActiveSec,
	)
	return r
}

// Live returns the live records ordered by ID.
func (t *EmitterTracker) Live() []*EmitterRecord {
	out := make([]*EmitterRecord, 0, len(t.live))
	for _, r := range t.live {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of live emitters being tracked.
func (t *EmitterTracker) Count() int {
	return len(t.live)
}
