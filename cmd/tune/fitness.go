package main

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/sparks/config"
	"github.com/pthm-cable/sparks/game"
	"github.com/pthm-cable/sparks/telemetry"
)

// Fitness weights and run shape.
const (
	stabilityWeight = 0.1
	warmupWindows   = 2 // skip first N windows while the population fills
	statsWindowSec  = 1.0
	runDT           = 1.0 / 60.0
	failedFitness   = 1e6
)

// FitnessEvaluator runs headless simulations of one preset and scores how
// close the live particle count settles to a target.
type FitnessEvaluator struct {
	params   *ParamVector
	preset   string
	target   float64
	frames   int64
	seeds    []uint64
	baseYAML []byte

	mu            sync.Mutex
	lastCountMean float64
}

// NewFitnessEvaluator creates a new evaluator. baseYAML is re-parsed for
// every run so runs never share config state.
func NewFitnessEvaluator(params *ParamVector, preset string, target float64, seconds float64, seeds []uint64, baseYAML []byte) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:   params,
		preset:   preset,
		target:   target,
		frames:   int64(seconds / runDT),
		seeds:    seeds,
		baseYAML: baseYAML,
	}
}

// LastCountMean returns the steady-state count from the most recent evaluation.
func (fe *FitnessEvaluator) LastCountMean() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCountMean
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness   float64
	countMean float64
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s uint64) {
			defer wg.Done()
			windows, err := fe.runSimulation(x, s)
			if err != nil {
				results[idx] = seedResult{fitness: failedFitness}
				return
			}
			fitness, mean := computeFitness(windows, fe.target)
			results[idx] = seedResult{fitness: fitness, countMean: mean}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalMean float64
	for _, r := range results {
		totalFitness += r.fitness
		totalMean += r.countMean
	}
	n := float64(len(fe.seeds))

	fe.mu.Lock()
	fe.lastCountMean = totalMean / n
	fe.mu.Unlock()

	return totalFitness / n
}

// runSimulation runs the preset alone, respawned at the world centre every
// time it expires, and returns the stats windows.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed uint64) ([]telemetry.WindowStats, error) {
	cfg, err := fe.configFor(x)
	if err != nil {
		return nil, err
	}

	g, err := game.NewGameWithOptions(game.Options{
		Config:         cfg,
		Seed:           seed,
		DT:             runDT,
		StatsWindowSec: statsWindowSec,
		Headless:       true,
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	var windows []telemetry.WindowStats
	g.SetStatsCallback(func(s telemetry.WindowStats) {
		windows = append(windows, s)
	})

	for g.Frame() < fe.frames {
		g.UpdateHeadless()
	}
	return windows, nil
}

// configFor builds a fresh config with x applied to the tuned preset.
func (fe *FitnessEvaluator) configFor(x []float64) (*config.Config, error) {
	cfg, err := config.Parse(fe.baseYAML)
	if err != nil {
		return nil, err
	}
	fe.params.ApplyToPreset(cfg, fe.preset, x)

	preset, _ := cfg.Preset(fe.preset)
	cfg.Spawn = []config.SpawnConfig{{
		Emitter: fe.preset,
		At:      [2]float32{0.5, 0.5},
		Every:   preset.Duration,
	}}
	return cfg, nil
}

// computeFitness scores windows against target (lower = better).
// Formula: relErr² + stabilityWeight × cv², over windows past warmup.
func computeFitness(windows []telemetry.WindowStats, target float64) (fitness, countMean float64) {
	if len(windows) <= warmupWindows || target <= 0 {
		return failedFitness, 0
	}

	counts := make([]float64, 0, len(windows)-warmupWindows)
	for _, w := range windows[warmupWindows:] {
		counts = append(counts, w.CountMean)
	}
	mean, std := stat.PopMeanStdDev(counts, nil)

	relErr := (mean - target) / target
	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}
	fitness = relErr*relErr + stabilityWeight*cv*cv
	if math.IsNaN(fitness) {
		return failedFitness, mean
	}
	return fitness, mean
}
