package api

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
)

// errAmbiguousSelection is returned when a tissue selection request does
// not name exactly one of preset, config_id or inline config.
var errAmbiguousSelection = errors.New(
	"tissue selection must carry exactly one of preset, config_id or config",
)

// ParametersRequest carries raw clinical-unit stimulation parameters.
// Numeric fields are deliberately not range-validated: the engine clamps
// out-of-domain values instead of rejecting them. Only the mode is a
// closed contract.
type ParametersRequest struct {
	FrequencyHz  float64 `json:"frequency_hz"`
	PulseWidthUs float64 `json:"pulse_width_us"`
	IntensitymA  float64 `json:"intensity_ma"`
	Mode         string  `json:"mode" validate:"required,oneof=conventional acupuncture burst modulated"`
}

func (r ParametersRequest) toDomain() domain.TensParameters {
	return domain.TensParameters{
		FrequencyHz:  r.FrequencyHz,
		PulseWidthUs: r.PulseWidthUs,
		IntensitymA:  r.IntensitymA,
		Mode:         domain.StimulationMode(r.Mode),
	}
}

// InclusionPayload carries one tissue inclusion. The ID is optional on
// input; one is generated when absent.
type InclusionPayload struct {
	ID       string  `json:"id,omitempty"`
	Type     string  `json:"type" validate:"required,oneof=bone metal_implant"`
	Depth    float64 `json:"depth" validate:"gte=0,lte=1"`
	Span     float64 `json:"span" validate:"gte=0,lte=1"`
	Position float64 `json:"position" validate:"gte=0,lte=1"`
}

func (p InclusionPayload) toDomain() (domain.TissueInclusion, error) {
	id := uuid.Nil
	if p.ID != "" {
		parsed, err := uuid.Parse(p.ID)
		if err != nil {
			return domain.TissueInclusion{}, domain.ErrInvalidID
		}
		id = parsed
	} else {
		id = uuid.New()
	}

	return domain.TissueInclusion{
		ID:       id,
		Type:     domain.InclusionType(p.Type),
		Depth:    p.Depth,
		Span:     p.Span,
		Position: p.Position,
	}, nil
}

// TissueConfigPayload carries an inline tissue configuration. Layer
// fractions are boundary-validated into [0,1]; the engine additionally
// clamps defensively.
type TissueConfigPayload struct {
	Label                string             `json:"label,omitempty"`
	SkinThickness        float64            `json:"skin_thickness" validate:"gte=0,lte=1"`
	FatThickness         float64            `json:"fat_thickness" validate:"gte=0,lte=1"`
	MuscleThickness      float64            `json:"muscle_thickness" validate:"gte=0,lte=1"`
	BoneDepth            float64            `json:"bone_depth" validate:"gte=0,lte=1"`
	HasMetalImplant      bool               `json:"has_metal_implant"`
	MetalImplantDepth    float64            `json:"metal_implant_depth,omitempty" validate:"gte=0,lte=1"`
	MetalImplantSpan     float64            `json:"metal_implant_span,omitempty" validate:"gte=0,lte=1"`
	Inclusions           []InclusionPayload `json:"inclusions,omitempty" validate:"dive"`
	EnableRiskSimulation bool               `json:"enable_risk_simulation"`
}

func (p TissueConfigPayload) toDomain() (domain.TissueConfig, error) {
	config := domain.TissueConfig{
		ID:                   domain.CustomConfigID,
		Label:                p.Label,
		SkinThickness:        p.SkinThickness,
		FatThickness:         p.FatThickness,
		MuscleThickness:      p.MuscleThickness,
		BoneDepth:            p.BoneDepth,
		HasMetalImplant:      p.HasMetalImplant,
		MetalImplantDepth:    p.MetalImplantDepth,
		MetalImplantSpan:     p.MetalImplantSpan,
		EnableRiskSimulation: p.EnableRiskSimulation,
	}

	for _, inc := range p.Inclusions {
		domainInc, err := inc.toDomain()
		if err != nil {
			return domain.TissueConfig{}, err
		}
		config.Inclusions = append(config.Inclusions, domainInc)
	}

	return config, nil
}

// TissueSelectionRequest identifies the tissue model for a risk
// assessment. Exactly one field must be set.
type TissueSelectionRequest struct {
	Preset   string               `json:"preset,omitempty"`
	ConfigID string               `json:"config_id,omitempty"`
	Config   *TissueConfigPayload `json:"config,omitempty"`
}

func (r TissueSelectionRequest) toSelection() (tissue.Selection, error) {
	set := 0
	if r.Preset != "" {
		set++
	}
	if r.ConfigID != "" {
		set++
	}
	if r.Config != nil {
		set++
	}
	if set != 1 {
		return nil, errAmbiguousSelection
	}

	switch {
	case r.Preset != "":
		return tissue.PresetSelection{ID: r.Preset}, nil

	case r.ConfigID != "":
		id, err := uuid.Parse(r.ConfigID)
		if err != nil {
			return nil, domain.ErrInvalidID
		}
		return tissue.SavedSelection{ID: id}, nil

	default:
		config, err := r.Config.toDomain()
		if err != nil {
			return nil, err
		}
		return tissue.CustomSelection{Config: config}, nil
	}
}

// RiskRequest is the body of POST /api/risk.
type RiskRequest struct {
	Parameters ParametersRequest      `json:"parameters" validate:"required"`
	Tissue     TissueSelectionRequest `json:"tissue"`
}

// SimulationResponse mirrors domain.SimulationResult.
type SimulationResponse struct {
	ComfortLevel    int    `json:"comfort_level"`
	ActivationLevel int    `json:"activation_level"`
	ComfortMessage  string `json:"comfort_message"`
}

func simulationToResponse(result domain.SimulationResult) SimulationResponse {
	return SimulationResponse{
		ComfortLevel:    result.ComfortLevel,
		ActivationLevel: result.ActivationLevel,
		ComfortMessage:  result.ComfortMessage,
	}
}

// RiskResponse carries the risk classification plus the tissue
// configuration it was actually computed against (which may be the
// fallback default).
type RiskResponse struct {
	RiskScore int                 `json:"risk_score"`
	RiskLevel string              `json:"risk_level"`
	Messages  []string            `json:"messages"`
	Tissue    domain.TissueConfig `json:"tissue"`
}

func riskToResponse(result domain.RiskResult, config domain.TissueConfig) RiskResponse {
	return RiskResponse{
		RiskScore: result.RiskScore,
		RiskLevel: string(result.RiskLevel),
		Messages:  result.Messages,
		Tissue:    config,
	}
}

// PresetResponse represents one catalog entry.
type PresetResponse struct {
	ID     string              `json:"id"`
	Label  string              `json:"label"`
	Config domain.TissueConfig `json:"config"`
}

func presetToResponse(entry tissue.PresetEntry) PresetResponse {
	return PresetResponse{
		ID:     entry.ID,
		Label:  entry.Label,
		Config: entry.Config,
	}
}

// SaveConfigRequest is the body of POST/PUT on saved tissue configs.
type SaveConfigRequest struct {
	Label  string              `json:"label" validate:"required,max=120"`
	Config TissueConfigPayload `json:"config" validate:"required"`
}

// SavedConfigResponse represents a stored custom tissue configuration.
type SavedConfigResponse struct {
	ID        string              `json:"id"`
	Label     string              `json:"label"`
	Config    domain.TissueConfig `json:"config"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func savedConfigToResponse(saved *domain.SavedTissueConfig) SavedConfigResponse {
	return SavedConfigResponse{
		ID:        saved.ID.String(),
		Label:     saved.Label,
		Config:    saved.Config,
		CreatedAt: saved.CreatedAt,
		UpdatedAt: saved.UpdatedAt,
	}
}

// UpdateInclusionRequest carries a partial inclusion update. Nil fields
// are left unchanged; numeric fields are clamped at the editing boundary.
type UpdateInclusionRequest struct {
	Type     *string  `json:"type,omitempty" validate:"omitempty,oneof=bone metal_implant"`
	Depth    *float64 `json:"depth,omitempty"`
	Span     *float64 `json:"span,omitempty"`
	Position *float64 `json:"position,omitempty"`
}

func (r UpdateInclusionRequest) toPatch() tissue.InclusionPatch {
	patch := tissue.InclusionPatch{
		Depth:    r.Depth,
		Span:     r.Span,
		Position: r.Position,
	}
	if r.Type != nil {
		t := domain.InclusionType(*r.Type)
		patch.Type = &t
	}
	return patch
}

// AddInclusionResponse returns the new inclusion along with the updated
// configuration.
type AddInclusionResponse struct {
	Inclusion domain.TissueInclusion `json:"inclusion"`
	Config    SavedConfigResponse    `json:"config"`
}
