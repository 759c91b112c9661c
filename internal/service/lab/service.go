// Package lab provides the application service for the TENS virtual lab.
// It resolves tissue selections (preset, saved or inline custom), invokes
// the pure simulation engine and owns the CRUD surface for saved custom
// tissue configurations.
package lab

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/sim"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
)

// Common errors
var (
	// ErrInvalidParameters is returned when stimulation parameters fail
	// domain validation (unknown mode).
	ErrInvalidParameters = errors.New("invalid stimulation parameters")

	// ErrConfigNotFound is returned by the saved-config CRUD operations
	// when the requested configuration does not exist. Selection
	// resolution never returns it: unresolvable selections fall back to
	// the default configuration instead.
	ErrConfigNotFound = errors.New("saved tissue config not found")

	// ErrInvalidConfig is returned when a tissue configuration fails
	// domain validation.
	ErrInvalidConfig = errors.New("invalid tissue config")

	// ErrNilSelection is returned when a risk assessment is requested
	// without any tissue selection.
	ErrNilSelection = errors.New("tissue selection cannot be nil")
)

// Service defines the interface for TENS virtual lab operations.
type Service interface {
	// Simulate computes the comfort/activation estimate for the given
	// stimulation parameters.
	Simulate(ctx context.Context, params domain.TensParameters) (domain.SimulationResult, error)

	// AssessRisk resolves the tissue selection and computes the risk
	// classification against it. The resolved configuration is returned
	// alongside the result so callers can display what was actually
	// assessed (e.g. after a fallback).
	AssessRisk(
		ctx context.Context,
		params domain.TensParameters,
		selection tissue.Selection,
	) (domain.RiskResult, domain.TissueConfig, error)

	// ResolveSelection maps a tissue selection to a concrete configuration.
	// Unknown presets and missing or unreadable saved configurations fall
	// back to the default configuration rather than failing, per the
	// catalog boundary contract.
	ResolveSelection(ctx context.Context, selection tissue.Selection) (domain.TissueConfig, error)

	// Presets returns the preset catalog entries.
	Presets() []tissue.PresetEntry

	// GetPreset returns an independent copy of one preset's configuration.
	// Returns tissue.ErrPresetNotFound for unknown IDs.
	GetPreset(id string) (domain.TissueConfig, error)

	// DefaultConfig returns a copy of the default tissue configuration.
	DefaultConfig() domain.TissueConfig

	// SaveConfig persists a user-authored configuration under a label.
	SaveConfig(
		ctx context.Context,
		label string,
		config domain.TissueConfig,
	) (*domain.SavedTissueConfig, error)

	// GetSavedConfig retrieves a saved configuration.
	// Returns ErrConfigNotFound if it does not exist.
	GetSavedConfig(ctx context.Context, id uuid.UUID) (*domain.SavedTissueConfig, error)

	// UpdateSavedConfig replaces the label and configuration of a saved
	// entry. Returns ErrConfigNotFound if it does not exist.
	UpdateSavedConfig(
		ctx context.Context,
		id uuid.UUID,
		label string,
		config domain.TissueConfig,
	) (*domain.SavedTissueConfig, error)

	// DeleteSavedConfig removes a saved configuration.
	// Returns ErrConfigNotFound if it does not exist.
	DeleteSavedConfig(ctx context.Context, id uuid.UUID) error

	// ListSavedConfigs returns saved configurations, newest first.
	ListSavedConfigs(
		ctx context.Context,
		limit, offset int,
	) ([]*domain.SavedTissueConfig, error)

	// AddInclusion appends a default-valued inclusion to a saved
	// configuration and persists the result.
	AddInclusion(
		ctx context.Context,
		configID uuid.UUID,
	) (*domain.SavedTissueConfig, domain.TissueInclusion, error)

	// UpdateInclusion applies a partial, boundary-clamped update to one
	// inclusion of a saved configuration and persists the result.
	UpdateInclusion(
		ctx context.Context,
		configID, inclusionID uuid.UUID,
		patch tissue.InclusionPatch,
	) (*domain.SavedTissueConfig, error)

	// RemoveInclusion removes one inclusion from a saved configuration and
	// persists the result.
	RemoveInclusion(
		ctx context.Context,
		configID, inclusionID uuid.UUID,
	) (*domain.SavedTissueConfig, error)
}

// Simulator is the slice of the engine the lab service consumes. It is
// satisfied by sim.Service.
type Simulator interface {
	SimulateTens(params domain.TensParameters) (domain.SimulationResult, error)
	SimulateTissueRisk(
		params domain.TensParameters,
		tissue domain.TissueConfig,
	) (domain.RiskResult, error)
	Normalize(params domain.TensParameters) sim.NormalizedParameters
}
