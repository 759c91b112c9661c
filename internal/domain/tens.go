package domain

// Reference maxima for the clinical parameter ranges. Values above these
// are clamped during normalization, never rejected.
const (
	// MaxIntensitymA is the reference maximum stimulation intensity in milliamperes.
	MaxIntensitymA = 80.0

	// MaxFrequencyHz is the reference maximum pulse frequency in hertz.
	MaxFrequencyHz = 200.0

	// MaxPulseWidthUs is the reference maximum pulse width in microseconds.
	MaxPulseWidthUs = 400.0
)

// StimulationMode identifies the delivery pattern of the stimulation.
// It is a closed enumeration; anything outside the four modes below
// fails validation.
type StimulationMode string

const (
	// ModeConventional is high-frequency continuous stimulation. It favors
	// comfort at moderate intensity through gate-control analgesia.
	ModeConventional StimulationMode = "conventional"

	// ModeAcupuncture is low-frequency stimulation with long pulses. It has
	// a lower comfort ceiling and higher activation per unit intensity.
	ModeAcupuncture StimulationMode = "acupuncture"

	// ModeBurst delivers grouped high-frequency pulses at a low repetition
	// rate. Both comfort and activation are elevated versus conventional
	// delivery at equal intensity.
	ModeBurst StimulationMode = "burst"

	// ModeModulated varies amplitude over time to avoid accommodation.
	// Treated as conventional with a small comfort bonus.
	ModeModulated StimulationMode = "modulated"
)

// Valid reports whether the mode is one of the supported modes.
func (m StimulationMode) Valid() bool {
	switch m {
	case ModeConventional, ModeAcupuncture, ModeBurst, ModeModulated:
		return true
	default:
		return false
	}
}

// TensParameters is the immutable per-evaluation input to the stimulation
// and risk simulators. Numeric fields are raw clinical units; out-of-range
// values are clamped by the engine rather than rejected.
type TensParameters struct {
	FrequencyHz  float64         `json:"frequency_hz"`
	PulseWidthUs float64         `json:"pulse_width_us"`
	IntensitymA  float64         `json:"intensity_ma"`
	Mode         StimulationMode `json:"mode"`
}

// Validate checks that the parameters carry a known stimulation mode.
// Numeric fields are intentionally not validated here: the engine clamps
// them into the reference ranges.
func (p TensParameters) Validate() error {
	if !p.Mode.Valid() {
		return ErrInvalidStimulationMode
	}
	return nil
}

// SimulationResult is the output of the stimulation simulator.
type SimulationResult struct {
	// ComfortLevel is the perceived comfort score, 0-100 (higher = more comfortable).
	ComfortLevel int `json:"comfort_level"`

	// ActivationLevel is the perceived sensory/motor activation intensity, 0-100.
	ActivationLevel int `json:"activation_level"`

	// ComfortMessage is the human-readable classification of ComfortLevel.
	ComfortMessage string `json:"comfort_message"`
}

// Comfort classification messages. These are UI-visible contracts tied to
// fixed comfort tiers.
const (
	ComfortMessageComfortable   = "comfortable"
	ComfortMessageModerate      = "moderate"
	ComfortMessageUncomfortable = "uncomfortable"
)
