package sim

import (
	"github.com/fisiolab/tenslab-api/internal/domain"
)

// simulateTens computes the perceived comfort and activation levels for
// the given stimulation parameters.
//
// Comfort degrades as intensity and pulse width rise (more total charge
// per pulse) and as frequency drops into ranges associated with strong
// motor recruitment. Activation rises with intensity and pulse width.
// Each mode then adjusts the base curves:
//
//   - conventional: the base curve unchanged
//   - acupuncture: scaled-down comfort ceiling, extra activation per unit intensity
//   - burst: flat comfort and activation bonuses (both elevated versus
//     conventional at equal intensity)
//   - modulated: small comfort bonus (delays adaptation-driven discomfort)
//
// Both outputs are integers clamped to [0,100]. The function never fails:
// the domain is closed under clamping.
func simulateTens(p domain.TensParameters, params *Params) domain.SimulationResult {
	n := normalizeParameters(p, params)

	comfort := params.ComfortBase -
		params.ComfortIntensityWeight*n.Intensity -
		params.ComfortPulseWeight*n.PulseWidth -
		params.ComfortLowFreqWeight*(1-n.Frequency)

	activation := params.ActivationIntensityWeight*n.Intensity +
		params.ActivationPulseWeight*n.PulseWidth

	switch p.Mode {
	case domain.ModeAcupuncture:
		comfort *= params.ComfortAcupunctureScale
		activation += params.ActivationAcupunctureWeight * n.Intensity
	case domain.ModeBurst:
		comfort += params.ComfortBurstBonus
		activation += params.ActivationBurstBonus
	case domain.ModeModulated:
		comfort += params.ComfortModulatedBonus
	}

	result := domain.SimulationResult{
		ComfortLevel:    clampScore(comfort),
		ActivationLevel: clampScore(activation),
	}
	result.ComfortMessage = comfortMessageForLevel(result.ComfortLevel, params)

	return result
}

// comfortMessageForLevel selects the UI-visible comfort classification for
// a clamped comfort level.
func comfortMessageForLevel(level int, params *Params) string {
	switch {
	case level >= params.ComfortableThreshold:
		return domain.ComfortMessageComfortable
	case level >= params.ComfortModerateThreshold:
		return domain.ComfortMessageModerate
	default:
		return domain.ComfortMessageUncomfortable
	}
}
