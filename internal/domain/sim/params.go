package sim

import (
	"github.com/fisiolab/tenslab-api/internal/domain"
)

// Params defines all configurable coefficients and thresholds for the
// stimulation and risk models. Keeping them in one place makes the model
// tunable without code changes and keeps the tier/band edges testable.
type Params struct {
	// Normalization reference maxima (clinical units).
	MaxIntensitymA  float64
	MaxFrequencyHz  float64
	MaxPulseWidthUs float64

	// Comfort model. Comfort starts at ComfortBase and degrades with
	// intensity, pulse width (charge per pulse) and low frequency (motor
	// recruitment without high-frequency gating relief).
	ComfortBase            float64
	ComfortIntensityWeight float64
	ComfortPulseWeight     float64
	ComfortLowFreqWeight   float64

	// Per-mode comfort adjustments. Burst's grouped delivery is more
	// comfortable than continuous delivery at equal intensity, so it gets
	// a flat bonus like modulated.
	ComfortAcupunctureScale float64
	ComfortBurstBonus       float64
	ComfortModulatedBonus   float64

	// Comfort tier edges: >= ComfortableThreshold is "comfortable",
	// >= ComfortModerateThreshold is "moderate", below is "uncomfortable".
	ComfortableThreshold     int
	ComfortModerateThreshold int

	// Activation model. Activation rises with intensity and pulse width;
	// acupuncture adds activation per unit intensity, burst adds a flat
	// bonus for its concentrated energy delivery.
	ActivationIntensityWeight   float64
	ActivationPulseWeight       float64
	ActivationAcupunctureWeight float64
	ActivationBurstBonus        float64

	// Risk base load weights. Intensity dominates, pulse width is
	// secondary, frequency tertiary: charge per pulse and total charge
	// drive tissue heating more than repetition rate. Applied to the
	// normalized parameters and scaled to 0-100.
	RiskIntensityWeight float64
	RiskPulseWeight     float64
	RiskFrequencyWeight float64

	// Shallow bone effect: bone depth below ShallowBoneDepth combined with
	// normalized intensity above ShallowBoneIntensity multiplies the score.
	ShallowBoneDepth      float64
	ShallowBoneIntensity  float64
	ShallowBoneMultiplier float64

	// Metal implant effect: a fixed multiplicative penalty. This is the
	// single highest-risk factor in the domain and must dominate the
	// tissue thickness effects.
	MetalImplantMultiplier float64

	// Thin fat effect: fat below ThinFatThickness with normalized intensity
	// above ThinFatIntensity adds ThinFatBonus (less attenuation before
	// muscle and bone).
	ThinFatThickness float64
	ThinFatIntensity float64
	ThinFatBonus     float64

	// Additive contributions for inclusions inside the effective
	// stimulation zone.
	MetalInclusionBonus float64
	BoneInclusionBonus  float64

	// Effective stimulation zone geometry. The zone is centered laterally
	// between the electrodes and both deepens and widens with intensity,
	// which keeps the inclusion terms monotone in intensity.
	ZoneBaseDepth     float64
	ZoneIntensityGain float64
	ZoneHalfWidthBase float64
	ZoneHalfWidthGain float64

	// Risk band edges: < ModerateRiskThreshold is low,
	// < HighRiskThreshold is moderate, otherwise high.
	ModerateRiskThreshold int
	HighRiskThreshold     int
}

// ParamsConfig allows overriding selected defaults when creating a new
// Params instance, typically from application configuration.
type ParamsConfig struct {
	MetalImplantMultiplier float64
	ShallowBoneMultiplier  float64

	ComfortableThreshold     int
	ComfortModerateThreshold int
	ModerateRiskThreshold    int
	HighRiskThreshold        int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		MaxIntensitymA:  domain.MaxIntensitymA,
		MaxFrequencyHz:  domain.MaxFrequencyHz,
		MaxPulseWidthUs: domain.MaxPulseWidthUs,

		ComfortBase:            100,
		ComfortIntensityWeight: 60,
		ComfortPulseWeight:     20,
		ComfortLowFreqWeight:   15,

		ComfortAcupunctureScale: 0.85,
		ComfortBurstBonus:       8,
		ComfortModulatedBonus:   5,

		ComfortableThreshold:     70,
		ComfortModerateThreshold: 40,

		ActivationIntensityWeight:   75,
		ActivationPulseWeight:       15,
		ActivationAcupunctureWeight: 15,
		ActivationBurstBonus:        12,

		RiskIntensityWeight: 0.55,
		RiskPulseWeight:     0.30,
		RiskFrequencyWeight: 0.15,

		ShallowBoneDepth:      0.30,
		ShallowBoneIntensity:  0.50,
		ShallowBoneMultiplier: 1.25,

		MetalImplantMultiplier: 1.6,

		ThinFatThickness: 0.20,
		ThinFatIntensity: 0.60,
		ThinFatBonus:     10,

		MetalInclusionBonus: 12,
		BoneInclusionBonus:  6,

		ZoneBaseDepth:     0.35,
		ZoneIntensityGain: 0.45,
		ZoneHalfWidthBase: 0.25,
		ZoneHalfWidthGain: 0.15,

		ModerateRiskThreshold: 40,
		HighRiskThreshold:     70,
	}
}

// NewParams creates a new Params instance with custom configuration.
// Zero-valued fields in the config keep their defaults.
func NewParams(config ParamsConfig) *Params {
	params := NewDefaultParams()

	if config.MetalImplantMultiplier > 0 {
		params.MetalImplantMultiplier = config.MetalImplantMultiplier
	}
	if config.ShallowBoneMultiplier > 0 {
		params.ShallowBoneMultiplier = config.ShallowBoneMultiplier
	}
	if config.ComfortableThreshold > 0 {
		params.ComfortableThreshold = config.ComfortableThreshold
	}
	if config.ComfortModerateThreshold > 0 {
		params.ComfortModerateThreshold = config.ComfortModerateThreshold
	}
	if config.ModerateRiskThreshold > 0 {
		params.ModerateRiskThreshold = config.ModerateRiskThreshold
	}
	if config.HighRiskThreshold > 0 {
		params.HighRiskThreshold = config.HighRiskThreshold
	}

	return params
}
