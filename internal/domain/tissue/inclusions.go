package tissue

import (
	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// Editing bounds for inclusion fields. Out-of-band values are clamped here,
// at the editing boundary, so the risk assessor never needs to reject them.
const (
	MinInclusionDepth = 0.1
	MaxInclusionDepth = 0.9
	MinInclusionSpan  = 0.1
	MaxInclusionSpan  = 0.8
	MinInclusionPos   = 0.0
	MaxInclusionPos   = 1.0
)

// Defaults for a newly added inclusion.
const (
	DefaultInclusionDepth    = 0.5
	DefaultInclusionSpan     = 0.3
	DefaultInclusionPosition = 0.5
)

// InclusionPatch carries partial field updates for an inclusion. Nil fields
// are left unchanged.
type InclusionPatch struct {
	Type     *domain.InclusionType
	Depth    *float64
	Span     *float64
	Position *float64
}

// AddInclusion appends a new inclusion with a generated unique ID and
// default field values to a copy of the configuration. The input is never
// mutated; the returned config is promoted to custom because any edit
// means the user has left the preset template.
func AddInclusion(cfg domain.TissueConfig) (domain.TissueConfig, domain.TissueInclusion) {
	inclusion := domain.TissueInclusion{
		ID:       uuid.New(),
		Type:     domain.InclusionBone,
		Depth:    DefaultInclusionDepth,
		Span:     DefaultInclusionSpan,
		Position: DefaultInclusionPosition,
	}

	updated := PromoteToCustom(cfg)
	updated.Inclusions = append(updated.Inclusions, inclusion)

	return updated, inclusion
}

// RemoveInclusion removes the inclusion with the given ID from a copy of
// the configuration. Returns domain.ErrInclusionNotFound if no inclusion
// carries that ID.
func RemoveInclusion(cfg domain.TissueConfig, id uuid.UUID) (domain.TissueConfig, error) {
	idx := indexOfInclusion(cfg.Inclusions, id)
	if idx < 0 {
		return domain.TissueConfig{}, domain.ErrInclusionNotFound
	}

	updated := PromoteToCustom(cfg)
	updated.Inclusions = append(updated.Inclusions[:idx], updated.Inclusions[idx+1:]...)

	return updated, nil
}

// UpdateInclusion applies a partial update to the inclusion with the given
// ID on a copy of the configuration. Numeric fields are clamped into their
// editing bounds; an unknown inclusion type is rejected with
// domain.ErrInvalidInclusionType.
func UpdateInclusion(
	cfg domain.TissueConfig,
	id uuid.UUID,
	patch InclusionPatch,
) (domain.TissueConfig, error) {
	idx := indexOfInclusion(cfg.Inclusions, id)
	if idx < 0 {
		return domain.TissueConfig{}, domain.ErrInclusionNotFound
	}

	if patch.Type != nil && !patch.Type.Valid() {
		return domain.TissueConfig{}, domain.ErrInvalidInclusionType
	}

	updated := PromoteToCustom(cfg)
	inc := &updated.Inclusions[idx]

	if patch.Type != nil {
		inc.Type = *patch.Type
	}
	if patch.Depth != nil {
		inc.Depth = clampRange(*patch.Depth, MinInclusionDepth, MaxInclusionDepth)
	}
	if patch.Span != nil {
		inc.Span = clampRange(*patch.Span, MinInclusionSpan, MaxInclusionSpan)
	}
	if patch.Position != nil {
		inc.Position = clampRange(*patch.Position, MinInclusionPos, MaxInclusionPos)
	}

	return updated, nil
}

func indexOfInclusion(inclusions []domain.TissueInclusion, id uuid.UUID) int {
	for i, inc := range inclusions {
		if inc.ID == id {
			return i
		}
	}
	return -1
}

func clampRange(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
