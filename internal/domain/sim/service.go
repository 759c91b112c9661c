package sim

import (
	"errors"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// Common errors
var (
	ErrInvalidMode = errors.New("invalid stimulation mode")
)

// Service defines the interface for the stimulation and risk model.
type Service interface {
	// SimulateTens computes the perceived comfort/activation estimate for
	// the given parameters.
	SimulateTens(params domain.TensParameters) (domain.SimulationResult, error)

	// SimulateTissueRisk computes the safety risk classification for the
	// given parameters against a tissue model. The tissue snapshot is never
	// mutated.
	SimulateTissueRisk(
		params domain.TensParameters,
		tissue domain.TissueConfig,
	) (domain.RiskResult, error)

	// Normalize exposes the shared parameter normalization, mainly so the
	// UI can display the dimensionless factors it is driving.
	Normalize(params domain.TensParameters) NormalizedParameters
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new simulation service with default parameters.
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new simulation service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{
		params: params,
	}
}

// SimulateTens implements the Service interface.
func (s *defaultService) SimulateTens(
	params domain.TensParameters,
) (domain.SimulationResult, error) {
	if !params.Mode.Valid() {
		return domain.SimulationResult{}, ErrInvalidMode
	}

	return simulateTens(params, s.params), nil
}

// SimulateTissueRisk implements the Service interface.
func (s *defaultService) SimulateTissueRisk(
	params domain.TensParameters,
	tissue domain.TissueConfig,
) (domain.RiskResult, error) {
	if !params.Mode.Valid() {
		return domain.RiskResult{}, ErrInvalidMode
	}

	return simulateTissueRisk(params, tissue, s.params), nil
}

// Normalize implements the Service interface.
func (s *defaultService) Normalize(params domain.TensParameters) NormalizedParameters {
	return normalizeParameters(params, s.params)
}
