package domain

// RiskLevel partitions the risk score into non-overlapping bands.
// Closed enumeration.
type RiskLevel string

const (
	// RiskLow covers scores below the moderate threshold.
	RiskLow RiskLevel = "low"

	// RiskModerate covers scores from the moderate threshold up to, but not
	// including, the high threshold.
	RiskModerate RiskLevel = "moderate"

	// RiskHigh covers scores at or above the high threshold.
	RiskHigh RiskLevel = "high"
)

// Valid reports whether the risk level is one of the supported levels.
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh:
		return true
	default:
		return false
	}
}

// RiskResult is the output of the tissue risk assessor. It is purely a
// function of (TensParameters, TissueConfig); no hidden state or history.
type RiskResult struct {
	// RiskScore is 0-100, monotonically non-decreasing in stimulation
	// intensity for a fixed tissue model.
	RiskScore int `json:"risk_score"`

	// RiskLevel is the band RiskScore falls into.
	RiskLevel RiskLevel `json:"risk_level"`

	// Messages lists one human-readable explanation per contributing factor
	// that crossed its threshold, in deterministic order: metal implant,
	// bone depth, fat thickness, then each qualifying inclusion.
	Messages []string `json:"messages"`
}

// Risk factor explanation messages. UI-visible contracts.
const (
	RiskMessageMetalImplant   = "metal implant concentrates current density"
	RiskMessageShallowBone    = "shallow bone + high intensity"
	RiskMessageThinFat        = "thin fat layer + high intensity"
	RiskMessageMetalInclusion = "metal implant inclusion within stimulation zone"
	RiskMessageBoneInclusion  = "bone inclusion within stimulation zone"
)
