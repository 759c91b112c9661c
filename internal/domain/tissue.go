package domain

import (
	"github.com/google/uuid"
)

// CustomConfigID is the ID carried by tissue configurations that were
// authored or edited by a user rather than selected from the preset
// catalog. Preset templates themselves never carry this ID.
const CustomConfigID = "custom"

// InclusionType identifies the kind of a localized anatomical feature
// placed within the tissue cross-section. Closed enumeration.
type InclusionType string

const (
	// InclusionBone is an exposed or superficial bone feature.
	InclusionBone InclusionType = "bone"

	// InclusionMetalImplant is a conductive metal implant.
	InclusionMetalImplant InclusionType = "metal_implant"
)

// Valid reports whether the inclusion type is one of the supported types.
func (t InclusionType) Valid() bool {
	switch t {
	case InclusionBone, InclusionMetalImplant:
		return true
	default:
		return false
	}
}

// TissueInclusion is a localized anatomical feature placed within the
// tissue cross-section. Depth, span and position are fractions in [0,1];
// position is the lateral placement between the two electrodes
// (0 = left electrode, 1 = right electrode).
type TissueInclusion struct {
	ID       uuid.UUID     `json:"id"`
	Type     InclusionType `json:"type"`
	Depth    float64       `json:"depth"`
	Span     float64       `json:"span"`
	Position float64       `json:"position"`
}

// Validate checks if the inclusion has valid data.
func (i TissueInclusion) Validate() error {
	if i.ID == uuid.Nil {
		return ErrInvalidID
	}
	if !i.Type.Valid() {
		return ErrInvalidInclusionType
	}
	return nil
}

// TissueConfig is a layered anatomical cross-section between the two
// electrodes. Layer thicknesses are relative proportions in [0,1], not
// absolute millimeters; they need not sum to 1 (rendering normalizes them
// proportionally downstream). BoneDepth and the implant fields are
// normalized depths from the skin surface.
type TissueConfig struct {
	// ID is either a preset ID from the catalog or CustomConfigID.
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`

	SkinThickness   float64 `json:"skin_thickness"`
	FatThickness    float64 `json:"fat_thickness"`
	MuscleThickness float64 `json:"muscle_thickness"`
	BoneDepth       float64 `json:"bone_depth"`

	HasMetalImplant   bool    `json:"has_metal_implant"`
	MetalImplantDepth float64 `json:"metal_implant_depth,omitempty"`
	MetalImplantSpan  float64 `json:"metal_implant_span,omitempty"`

	// Inclusions are ordered by insertion; the order is display order and
	// carries no semantic weight.
	Inclusions []TissueInclusion `json:"inclusions,omitempty"`

	// EnableRiskSimulation toggles whether the risk assessor runs at all.
	EnableRiskSimulation bool `json:"enable_risk_simulation"`
}

// IsCustom reports whether the configuration is a user-authored one rather
// than an untouched preset.
func (c TissueConfig) IsCustom() bool {
	return c.ID == CustomConfigID
}

// Clone returns a deep copy of the configuration. The inclusion slice is
// copied so that mutating the clone never alters the original — catalog
// entries and stored configurations depend on this.
func (c TissueConfig) Clone() TissueConfig {
	clone := c
	if c.Inclusions != nil {
		clone.Inclusions = make([]TissueInclusion, len(c.Inclusions))
		copy(clone.Inclusions, c.Inclusions)
	}
	return clone
}

// Validate checks if the configuration has valid data. Layer fractions are
// not range-checked here because the engine clamps them defensively; only
// structural problems are rejected.
func (c TissueConfig) Validate() error {
	if c.ID == "" {
		return ErrInvalidID
	}
	if c.HasMetalImplant && (c.MetalImplantDepth <= 0 || c.MetalImplantSpan <= 0) {
		return ErrImplantFieldsMissing
	}
	for _, inc := range c.Inclusions {
		if err := inc.Validate(); err != nil {
			return err
		}
	}
	return nil
}
