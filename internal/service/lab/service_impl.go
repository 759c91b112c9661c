package lab

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
	"github.com/fisiolab/tenslab-api/internal/platform/logger"
	"github.com/fisiolab/tenslab-api/internal/store"
)

// labService is the standard implementation of the Service interface.
type labService struct {
	simulator   Simulator
	catalog     *tissue.Catalog
	configStore store.TissueConfigStore
	db          *sql.DB
	logger      *slog.Logger
}

// NewService creates a new lab service. The db handle is used to run the
// read-modify-write operations (config updates, inclusion edits)
// transactionally; it may be nil when the config store is not SQL-backed,
// in which case those operations run unwrapped.
// Panics on nil required dependencies; a nil logger falls back to the
// default logger.
func NewService(
	simulator Simulator,
	catalog *tissue.Catalog,
	configStore store.TissueConfigStore,
	db *sql.DB,
	log *slog.Logger,
) Service {
	if simulator == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("simulator cannot be nil for lab service")
	}
	if catalog == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("catalog cannot be nil for lab service")
	}
	if configStore == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("configStore cannot be nil for lab service")
	}
	if log == nil {
		log = slog.Default()
	}

	return &labService{
		simulator:   simulator,
		catalog:     catalog,
		configStore: configStore,
		db:          db,
		logger:      log.With(slog.String("component", "lab_service")),
	}
}

// Simulate implements the Service interface.
func (s *labService) Simulate(
	ctx context.Context,
	params domain.TensParameters,
) (domain.SimulationResult, error) {
	if err := params.Validate(); err != nil {
		return domain.SimulationResult{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	result, err := s.simulator.SimulateTens(params)
	if err != nil {
		return domain.SimulationResult{}, fmt.Errorf("%w: %v", ErrInvalidParameters, err)
	}

	return result, nil
}

// AssessRisk implements the Service interface.
func (s *labService) AssessRisk(
	ctx context.Context,
	params domain.TensParameters,
	selection tissue.Selection,
) (domain.RiskResult, domain.TissueConfig, error) {
	if err := params.Validate(); err != nil {
		return domain.RiskResult{}, domain.TissueConfig{}, fmt.Errorf(
			"%w: %v", ErrInvalidParameters, err)
	}

	config, err := s.ResolveSelection(ctx, selection)
	if err != nil {
		return domain.RiskResult{}, domain.TissueConfig{}, err
	}

	result, err := s.simulator.SimulateTissueRisk(params, config)
	if err != nil {
		return domain.RiskResult{}, domain.TissueConfig{}, fmt.Errorf(
			"%w: %v", ErrInvalidParameters, err)
	}

	return result, config, nil
}

// ResolveSelection implements the Service interface.
func (s *labService) ResolveSelection(
	ctx context.Context,
	selection tissue.Selection,
) (domain.TissueConfig, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	switch sel := selection.(type) {
	case nil:
		return domain.TissueConfig{}, ErrNilSelection

	case tissue.PresetSelection:
		config, err := s.catalog.Select(sel.ID)
		if err != nil {
			// A retired or mistyped preset is not an error for the caller;
			// fall back to the default model.
			log.Warn("unknown tissue preset, falling back to default",
				slog.String("preset_id", sel.ID))
			return s.catalog.DefaultConfig(), nil
		}
		return config, nil

	case tissue.SavedSelection:
		saved, err := s.configStore.GetByID(ctx, sel.ID)
		if err != nil {
			if errors.Is(err, store.ErrTissueConfigNotFound) {
				log.Warn("saved tissue config not found, falling back to default",
					slog.String("config_id", sel.ID.String()))
			} else {
				log.Error("failed to load saved tissue config, falling back to default",
					slog.String("error", err.Error()),
					slog.String("config_id", sel.ID.String()))
			}
			return s.catalog.DefaultConfig(), nil
		}
		return saved.Config.Clone(), nil

	case tissue.CustomSelection:
		if err := sel.Config.Validate(); err != nil {
			return domain.TissueConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		return sel.Config.Clone(), nil

	default:
		return domain.TissueConfig{}, ErrNilSelection
	}
}

// Presets implements the Service interface.
func (s *labService) Presets() []tissue.PresetEntry {
	return s.catalog.Presets()
}

// GetPreset implements the Service interface.
func (s *labService) GetPreset(id string) (domain.TissueConfig, error) {
	return s.catalog.Select(id)
}

// DefaultConfig implements the Service interface.
func (s *labService) DefaultConfig() domain.TissueConfig {
	return s.catalog.DefaultConfig()
}

// SaveConfig implements the Service interface.
func (s *labService) SaveConfig(
	ctx context.Context,
	label string,
	config domain.TissueConfig,
) (*domain.SavedTissueConfig, error) {
	saved, err := domain.NewSavedTissueConfig(label, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := s.configStore.Create(ctx, saved); err != nil {
		return nil, err
	}

	return saved, nil
}

// GetSavedConfig implements the Service interface.
func (s *labService) GetSavedConfig(
	ctx context.Context,
	id uuid.UUID,
) (*domain.SavedTissueConfig, error) {
	return getSavedConfig(ctx, s.configStore, id)
}

// UpdateSavedConfig implements the Service interface.
func (s *labService) UpdateSavedConfig(
	ctx context.Context,
	id uuid.UUID,
	label string,
	config domain.TissueConfig,
) (*domain.SavedTissueConfig, error) {
	var saved *domain.SavedTissueConfig

	err := s.inTxStore(ctx, func(cs store.TissueConfigStore) error {
		current, err := getSavedConfig(ctx, cs, id)
		if err != nil {
			return err
		}

		current.Label = label
		current.Config = tissue.PromoteToCustom(config)

		if err := current.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}

		if err := persistUpdate(ctx, cs, current); err != nil {
			return err
		}

		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// DeleteSavedConfig implements the Service interface.
func (s *labService) DeleteSavedConfig(ctx context.Context, id uuid.UUID) error {
	err := s.configStore.Delete(ctx, id)
	if errors.Is(err, store.ErrTissueConfigNotFound) {
		return ErrConfigNotFound
	}
	return err
}

// ListSavedConfigs implements the Service interface.
func (s *labService) ListSavedConfigs(
	ctx context.Context,
	limit, offset int,
) ([]*domain.SavedTissueConfig, error) {
	return s.configStore.List(ctx, limit, offset)
}

// AddInclusion implements the Service interface.
func (s *labService) AddInclusion(
	ctx context.Context,
	configID uuid.UUID,
) (*domain.SavedTissueConfig, domain.TissueInclusion, error) {
	var saved *domain.SavedTissueConfig
	var inclusion domain.TissueInclusion

	err := s.inTxStore(ctx, func(cs store.TissueConfigStore) error {
		current, err := getSavedConfig(ctx, cs, configID)
		if err != nil {
			return err
		}

		current.Config, inclusion = tissue.AddInclusion(current.Config)

		if err := persistUpdate(ctx, cs, current); err != nil {
			return err
		}

		saved = current
		return nil
	})
	if err != nil {
		return nil, domain.TissueInclusion{}, err
	}

	return saved, inclusion, nil
}

// UpdateInclusion implements the Service interface.
func (s *labService) UpdateInclusion(
	ctx context.Context,
	configID, inclusionID uuid.UUID,
	patch tissue.InclusionPatch,
) (*domain.SavedTissueConfig, error) {
	var saved *domain.SavedTissueConfig

	err := s.inTxStore(ctx, func(cs store.TissueConfigStore) error {
		current, err := getSavedConfig(ctx, cs, configID)
		if err != nil {
			return err
		}

		updated, err := tissue.UpdateInclusion(current.Config, inclusionID, patch)
		if err != nil {
			return err
		}
		current.Config = updated

		if err := persistUpdate(ctx, cs, current); err != nil {
			return err
		}

		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// RemoveInclusion implements the Service interface.
func (s *labService) RemoveInclusion(
	ctx context.Context,
	configID, inclusionID uuid.UUID,
) (*domain.SavedTissueConfig, error) {
	var saved *domain.SavedTissueConfig

	err := s.inTxStore(ctx, func(cs store.TissueConfigStore) error {
		current, err := getSavedConfig(ctx, cs, configID)
		if err != nil {
			return err
		}

		updated, err := tissue.RemoveInclusion(current.Config, inclusionID)
		if err != nil {
			return err
		}
		current.Config = updated

		if err := persistUpdate(ctx, cs, current); err != nil {
			return err
		}

		saved = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

// inTxStore runs fn against a transaction-bound view of the config store
// when a db handle is present, so get-then-update sequences cannot race
// with concurrent edits of the same configuration. Without a db handle the
// operations run against the store directly.
func (s *labService) inTxStore(
	ctx context.Context,
	fn func(cs store.TissueConfigStore) error,
) error {
	if s.db == nil {
		return fn(s.configStore)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(s.configStore.WithTx(tx))
	})
}

func getSavedConfig(
	ctx context.Context,
	cs store.TissueConfigStore,
	id uuid.UUID,
) (*domain.SavedTissueConfig, error) {
	saved, err := cs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTissueConfigNotFound) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return saved, nil
}

func persistUpdate(
	ctx context.Context,
	cs store.TissueConfigStore,
	saved *domain.SavedTissueConfig,
) error {
	err := cs.Update(ctx, saved)
	if errors.Is(err, store.ErrTissueConfigNotFound) {
		return ErrConfigNotFound
	}
	return err
}
