package lab

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/sim"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
	"github.com/fisiolab/tenslab-api/internal/store"
)

// fakeConfigStore is an in-memory TissueConfigStore for service tests.
type fakeConfigStore struct {
	configs  map[uuid.UUID]*domain.SavedTissueConfig
	failWith error
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{configs: make(map[uuid.UUID]*domain.SavedTissueConfig)}
}

func (f *fakeConfigStore) Create(_ context.Context, config *domain.SavedTissueConfig) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, exists := f.configs[config.ID]; exists {
		return store.ErrDuplicate
	}
	clone := *config
	clone.Config = config.Config.Clone()
	f.configs[config.ID] = &clone
	return nil
}

func (f *fakeConfigStore) GetByID(
	_ context.Context,
	id uuid.UUID,
) (*domain.SavedTissueConfig, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	saved, ok := f.configs[id]
	if !ok {
		return nil, store.ErrTissueConfigNotFound
	}
	clone := *saved
	clone.Config = saved.Config.Clone()
	return &clone, nil
}

func (f *fakeConfigStore) Update(_ context.Context, config *domain.SavedTissueConfig) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.configs[config.ID]; !ok {
		return store.ErrTissueConfigNotFound
	}
	clone := *config
	clone.Config = config.Config.Clone()
	f.configs[config.ID] = &clone
	return nil
}

func (f *fakeConfigStore) Delete(_ context.Context, id uuid.UUID) error {
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.configs[id]; !ok {
		return store.ErrTissueConfigNotFound
	}
	delete(f.configs, id)
	return nil
}

func (f *fakeConfigStore) List(
	_ context.Context,
	limit, offset int,
) ([]*domain.SavedTissueConfig, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	result := make([]*domain.SavedTissueConfig, 0, len(f.configs))
	for _, saved := range f.configs {
		clone := *saved
		clone.Config = saved.Config.Clone()
		result = append(result, &clone)
	}
	return result, nil
}

func (f *fakeConfigStore) WithTx(_ *sql.Tx) store.TissueConfigStore {
	return f
}

func newTestService(t *testing.T, configStore store.TissueConfigStore) Service {
	t.Helper()
	return NewService(sim.NewDefaultService(), tissue.NewDefaultCatalog(), configStore, nil, nil)
}

func validParams() domain.TensParameters {
	return domain.TensParameters{
		FrequencyHz:  80,
		PulseWidthUs: 200,
		IntensitymA:  20,
		Mode:         domain.ModeConventional,
	}
}

func TestServiceSimulate(t *testing.T) {
	t.Parallel()
	service := newTestService(t, newFakeConfigStore())

	t.Run("valid parameters", func(t *testing.T) {
		result, err := service.Simulate(context.Background(), validParams())
		require.NoError(t, err)
		assert.Equal(t, 66, result.ComfortLevel)
		assert.Equal(t, 26, result.ActivationLevel)
		assert.Equal(t, domain.ComfortMessageModerate, result.ComfortMessage)
	})

	t.Run("invalid mode", func(t *testing.T) {
		params := validParams()
		params.Mode = "ramped"
		_, err := service.Simulate(context.Background(), params)
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestServiceResolveSelection(t *testing.T) {
	t.Parallel()

	t.Run("known preset", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		config, err := service.ResolveSelection(
			context.Background(), tissue.PresetSelection{ID: "knee"})
		require.NoError(t, err)
		assert.Equal(t, "knee", config.ID)
	})

	t.Run("unknown preset falls back to default", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		config, err := service.ResolveSelection(
			context.Background(), tissue.PresetSelection{ID: "elbow"})
		require.NoError(t, err)
		assert.Equal(t, tissue.DefaultPresetID, config.ID)
	})

	t.Run("saved selection resolves stored config", func(t *testing.T) {
		t.Parallel()
		configStore := newFakeConfigStore()
		service := newTestService(t, configStore)

		saved, err := service.SaveConfig(
			context.Background(), "Scar tissue", service.DefaultConfig())
		require.NoError(t, err)

		config, err := service.ResolveSelection(
			context.Background(), tissue.SavedSelection{ID: saved.ID})
		require.NoError(t, err)
		assert.Equal(t, domain.CustomConfigID, config.ID)
	})

	t.Run("missing saved config falls back to default", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		config, err := service.ResolveSelection(
			context.Background(), tissue.SavedSelection{ID: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, tissue.DefaultPresetID, config.ID)
	})

	t.Run("store failure falls back to default", func(t *testing.T) {
		t.Parallel()
		configStore := newFakeConfigStore()
		configStore.failWith = errors.New("connection refused")
		service := newTestService(t, configStore)

		config, err := service.ResolveSelection(
			context.Background(), tissue.SavedSelection{ID: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, tissue.DefaultPresetID, config.ID)
	})

	t.Run("custom selection uses inline config", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		inline := service.DefaultConfig()
		inline.ID = domain.CustomConfigID
		inline.FatThickness = 0.10

		config, err := service.ResolveSelection(
			context.Background(), tissue.CustomSelection{Config: inline})
		require.NoError(t, err)
		assert.Equal(t, 0.10, config.FatThickness)
	})

	t.Run("invalid custom selection is rejected", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		inline := service.DefaultConfig()
		inline.HasMetalImplant = true // missing geometry fields

		_, err := service.ResolveSelection(
			context.Background(), tissue.CustomSelection{Config: inline})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("nil selection is rejected", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		_, err := service.ResolveSelection(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNilSelection)
	})
}

func TestServiceAssessRisk(t *testing.T) {
	t.Parallel()
	service := newTestService(t, newFakeConfigStore())

	t.Run("returns result and resolved config", func(t *testing.T) {
		result, config, err := service.AssessRisk(
			context.Background(), validParams(), tissue.PresetSelection{ID: "forearm"})
		require.NoError(t, err)

		assert.Equal(t, 35, result.RiskScore)
		assert.Equal(t, domain.RiskLow, result.RiskLevel)
		assert.Empty(t, result.Messages)
		assert.Equal(t, "forearm", config.ID)
	})

	t.Run("implant config raises risk", func(t *testing.T) {
		inline := service.DefaultConfig()
		inline.ID = domain.CustomConfigID
		inline.HasMetalImplant = true
		inline.MetalImplantDepth = 0.4
		inline.MetalImplantSpan = 0.2

		result, _, err := service.AssessRisk(
			context.Background(), validParams(), tissue.CustomSelection{Config: inline})
		require.NoError(t, err)

		assert.Equal(t, 56, result.RiskScore)
		assert.Equal(t, domain.RiskModerate, result.RiskLevel)
		assert.Contains(t, result.Messages, domain.RiskMessageMetalImplant)
	})

	t.Run("invalid mode", func(t *testing.T) {
		params := validParams()
		params.Mode = ""
		_, _, err := service.AssessRisk(
			context.Background(), params, tissue.PresetSelection{ID: "forearm"})
		assert.ErrorIs(t, err, ErrInvalidParameters)
	})
}

func TestServiceSavedConfigCRUD(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("save and get", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "My setup", service.DefaultConfig())
		require.NoError(t, err)
		assert.Equal(t, domain.CustomConfigID, saved.Config.ID)

		got, err := service.GetSavedConfig(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, "My setup", got.Label)
	})

	t.Run("save rejects invalid input", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		_, err := service.SaveConfig(ctx, "", service.DefaultConfig())
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("get missing config", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		_, err := service.GetSavedConfig(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("update replaces label and config", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Before", service.DefaultConfig())
		require.NoError(t, err)

		newConfig := service.DefaultConfig()
		newConfig.FatThickness = 0.10
		updated, err := service.UpdateSavedConfig(ctx, saved.ID, "After", newConfig)
		require.NoError(t, err)

		assert.Equal(t, "After", updated.Label)
		assert.Equal(t, 0.10, updated.Config.FatThickness)
		assert.Equal(t, domain.CustomConfigID, updated.Config.ID)
	})

	t.Run("update missing config", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		_, err := service.UpdateSavedConfig(ctx, uuid.New(), "Label", service.DefaultConfig())
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Doomed", service.DefaultConfig())
		require.NoError(t, err)

		require.NoError(t, service.DeleteSavedConfig(ctx, saved.ID))
		assert.ErrorIs(t, service.DeleteSavedConfig(ctx, saved.ID), ErrConfigNotFound)
	})

	t.Run("list", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		for _, label := range []string{"One", "Two", "Three"} {
			_, err := service.SaveConfig(ctx, label, service.DefaultConfig())
			require.NoError(t, err)
		}

		configs, err := service.ListSavedConfigs(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, configs, 3)
	})
}

func TestServiceInclusionEditing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("add persists inclusion", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Editable", service.DefaultConfig())
		require.NoError(t, err)

		updated, inclusion, err := service.AddInclusion(ctx, saved.ID)
		require.NoError(t, err)
		require.Len(t, updated.Config.Inclusions, 1)
		assert.Equal(t, inclusion.ID, updated.Config.Inclusions[0].ID)

		// The change survived a round trip through the store.
		got, err := service.GetSavedConfig(ctx, saved.ID)
		require.NoError(t, err)
		require.Len(t, got.Config.Inclusions, 1)
	})

	t.Run("update patches and clamps", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Editable", service.DefaultConfig())
		require.NoError(t, err)
		_, inclusion, err := service.AddInclusion(ctx, saved.ID)
		require.NoError(t, err)

		depth := 99.0
		updated, err := service.UpdateInclusion(ctx, saved.ID, inclusion.ID,
			tissue.InclusionPatch{Depth: &depth})
		require.NoError(t, err)
		assert.Equal(t, tissue.MaxInclusionDepth, updated.Config.Inclusions[0].Depth)
	})

	t.Run("remove", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Editable", service.DefaultConfig())
		require.NoError(t, err)
		_, inclusion, err := service.AddInclusion(ctx, saved.ID)
		require.NoError(t, err)

		updated, err := service.RemoveInclusion(ctx, saved.ID, inclusion.ID)
		require.NoError(t, err)
		assert.Empty(t, updated.Config.Inclusions)
	})

	t.Run("unknown inclusion", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		saved, err := service.SaveConfig(ctx, "Editable", service.DefaultConfig())
		require.NoError(t, err)

		_, err = service.RemoveInclusion(ctx, saved.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrInclusionNotFound)
	})

	t.Run("unknown config", func(t *testing.T) {
		t.Parallel()
		service := newTestService(t, newFakeConfigStore())

		_, _, err := service.AddInclusion(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrConfigNotFound)
	})
}
