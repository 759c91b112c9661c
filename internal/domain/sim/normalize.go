package sim

import (
	"math"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// NormalizedParameters holds the dimensionless [0,1] factors derived from
// raw clinical-unit parameters. Both the stimulation simulator and the
// risk assessor consume this exact normalization so their outputs stay
// consistent with each other.
type NormalizedParameters struct {
	Intensity  float64
	Frequency  float64
	PulseWidth float64
}

// normalizeParameters maps raw parameters into [0,1] factors using the
// reference maxima from params. Negative, NaN and above-maximum inputs
// are clamped; the result is always a finite value in [0,1].
func normalizeParameters(p domain.TensParameters, params *Params) NormalizedParameters {
	return NormalizedParameters{
		Intensity:  normalizeComponent(p.IntensitymA, params.MaxIntensitymA),
		Frequency:  normalizeComponent(p.FrequencyHz, params.MaxFrequencyHz),
		PulseWidth: normalizeComponent(p.PulseWidthUs, params.MaxPulseWidthUs),
	}
}

func normalizeComponent(value, max float64) float64 {
	if max <= 0 || math.IsNaN(value) {
		return 0
	}
	return clamp01(value / max)
}

// clamp01 clamps v into [0,1]. NaN clamps to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// clampScore rounds v to the nearest integer and clamps it into [0,100].
func clampScore(v float64) int {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return int(math.Round(v))
}
