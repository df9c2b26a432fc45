package main

import (
	"math"

	"github.com/pthm-cable/sparks/config"
)

// ParamSpec defines a single tunable preset parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of tunable parameters of one preset.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the tunable parameters, defaulting to preset's values.
func NewParamVector(preset config.EmitterConfig) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "emission_rate", Min: 1, Max: 200, Default: float64(preset.EmissionRate)},
			{Name: "particles_per_emission", Min: 1, Max: 20, Default: float64(preset.ParticlesPerEmission)},
			// Multiplies both ends of the preset's lifetime range
			{Name: "lifetime_scale", Min: 0.25, Max: 4, Default: 1},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToPreset writes parameter values into the named preset of cfg.
// The lifetime scale is applied to the preset's current lifetime range.
func (pv *ParamVector) ApplyToPreset(cfg *config.Config, name string, values []float64) bool {
	i, ok := cfg.Derived.EmitterIndex[name]
	if !ok {
		return false
	}
	clamped := pv.Clamp(values)

	e := &cfg.Emitters[i]
	e.EmissionRate = float32(clamped[0])
	e.ParticlesPerEmission = int(math.Round(clamped[1]))
	scale := float32(clamped[2])
	e.Lifetime = [2]float32{e.Lifetime[0] * scale, e.Lifetime[1] * scale}
	return true
}
