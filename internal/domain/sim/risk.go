package sim

import (
	"math"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// simulateTissueRisk computes the safety risk classification for the given
// stimulation parameters against a tissue model.
//
// The algorithm:
//
//  1. Normalize the parameters (shared with the stimulation simulator).
//  2. Compute a base thermal/electrical load from the weighted normalized
//     parameters (intensity dominant, pulse width secondary, frequency
//     tertiary), scaled to 0-100.
//  3. Apply tissue-derived effects: the metal implant multiplier first
//     (it must dominate), then the shallow-bone multiplier, the thin-fat
//     additive term, and one additive term per inclusion that lies inside
//     the effective stimulation zone.
//  4. Clamp to [0,100] and partition into the risk bands.
//
// Messages carry one explanation per factor that crossed its threshold, in
// the fixed order implant, bone, fat, inclusions (insertion order).
//
// If risk simulation is disabled on the tissue model the function
// short-circuits to {0, low, []}.
func simulateTissueRisk(
	p domain.TensParameters,
	tissue domain.TissueConfig,
	params *Params,
) domain.RiskResult {
	if !tissue.EnableRiskSimulation {
		return domain.RiskResult{
			RiskScore: 0,
			RiskLevel: domain.RiskLow,
			Messages:  []string{},
		}
	}

	n := normalizeParameters(p, params)

	score := 100 * (params.RiskIntensityWeight*n.Intensity +
		params.RiskPulseWeight*n.PulseWidth +
		params.RiskFrequencyWeight*n.Frequency)

	messages := []string{}

	if tissue.HasMetalImplant {
		score *= params.MetalImplantMultiplier
		messages = append(messages, domain.RiskMessageMetalImplant)
	}

	if clamp01(tissue.BoneDepth) < params.ShallowBoneDepth &&
		n.Intensity > params.ShallowBoneIntensity {
		score *= params.ShallowBoneMultiplier
		messages = append(messages, domain.RiskMessageShallowBone)
	}

	if clamp01(tissue.FatThickness) < params.ThinFatThickness &&
		n.Intensity > params.ThinFatIntensity {
		score += params.ThinFatBonus
		messages = append(messages, domain.RiskMessageThinFat)
	}

	zone := effectiveZone(n, params)
	for _, inc := range tissue.Inclusions {
		if !zone.contains(inc) {
			continue
		}
		switch inc.Type {
		case domain.InclusionMetalImplant:
			score += params.MetalInclusionBonus
			messages = append(messages, domain.RiskMessageMetalInclusion)
		case domain.InclusionBone:
			score += params.BoneInclusionBonus
			messages = append(messages, domain.RiskMessageBoneInclusion)
		}
	}

	riskScore := clampScore(score)

	return domain.RiskResult{
		RiskScore: riskScore,
		RiskLevel: riskLevelForScore(riskScore, params),
		Messages:  messages,
	}
}

// riskLevelForScore partitions a clamped score into its risk band.
func riskLevelForScore(score int, params *Params) domain.RiskLevel {
	switch {
	case score >= params.HighRiskThreshold:
		return domain.RiskHigh
	case score >= params.ModerateRiskThreshold:
		return domain.RiskModerate
	default:
		return domain.RiskLow
	}
}

// stimulationZone is the region of tissue the current meaningfully reaches,
// centered laterally between the electrodes. It deepens and widens with
// intensity, so inclusion contributions are monotone in intensity.
type stimulationZone struct {
	maxDepth  float64
	halfWidth float64
}

// zoneCenter is the lateral midpoint between the two electrodes.
const zoneCenter = 0.5

func effectiveZone(n NormalizedParameters, params *Params) stimulationZone {
	return stimulationZone{
		maxDepth:  clamp01(params.ZoneBaseDepth + params.ZoneIntensityGain*n.Intensity),
		halfWidth: params.ZoneHalfWidthBase + params.ZoneHalfWidthGain*n.Intensity,
	}
}

func (z stimulationZone) contains(inc domain.TissueInclusion) bool {
	if clamp01(inc.Depth) > z.maxDepth {
		return false
	}
	return math.Abs(clamp01(inc.Position)-zoneCenter) <= z.halfWidth
}
