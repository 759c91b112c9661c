package tissue_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/domain/tissue"
)

func TestNewDefaultCatalog(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	presets := catalog.Presets()
	require.Len(t, presets, 4)

	// Order is stable and display-facing.
	ids := make([]string, 0, len(presets))
	for _, p := range presets {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"forearm", "lumbar", "knee", "shoulder"}, ids)

	for _, p := range presets {
		assert.Equal(t, p.ID, p.Config.ID)
		assert.True(t, p.Config.EnableRiskSimulation, "preset %q should enable risk simulation", p.ID)
		assert.NoError(t, p.Config.Validate())
	}
}

func TestCatalogSelect(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	t.Run("known preset", func(t *testing.T) {
		t.Parallel()
		cfg, err := catalog.Select("knee")
		require.NoError(t, err)
		assert.Equal(t, "knee", cfg.ID)
		assert.Equal(t, 0.25, cfg.BoneDepth)
	})

	t.Run("unknown preset", func(t *testing.T) {
		t.Parallel()
		_, err := catalog.Select("elbow")
		assert.ErrorIs(t, err, tissue.ErrPresetNotFound)
	})
}

func TestCatalogSelectReturnsIndependentCopies(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	first, err := catalog.Select("forearm")
	require.NoError(t, err)

	// Mutate every field of the selected config, including the inclusions.
	first.SkinThickness = 0.99
	first.HasMetalImplant = true
	first.Inclusions = append(first.Inclusions, domain.TissueInclusion{
		ID: uuid.New(), Type: domain.InclusionBone, Depth: 0.4, Span: 0.3, Position: 0.5,
	})

	// Re-selecting must return the original template untouched.
	second, err := catalog.Select("forearm")
	require.NoError(t, err)
	assert.Equal(t, 0.15, second.SkinThickness)
	assert.False(t, second.HasMetalImplant)
	assert.Empty(t, second.Inclusions)
}

func TestCatalogPresetsReturnsIndependentCopies(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	presets := catalog.Presets()
	presets[0].Config.FatThickness = 0.99

	again := catalog.Presets()
	assert.Equal(t, 0.25, again[0].Config.FatThickness)
}

func TestCatalogContains(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	assert.True(t, catalog.Contains("lumbar"))
	assert.False(t, catalog.Contains("custom"))
	assert.False(t, catalog.Contains(""))
}

func TestCatalogDefaultConfig(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	cfg := catalog.DefaultConfig()
	assert.Equal(t, tissue.DefaultPresetID, cfg.ID)
	assert.True(t, cfg.EnableRiskSimulation)
}

func TestPromoteToCustom(t *testing.T) {
	t.Parallel()
	catalog := tissue.NewDefaultCatalog()

	cfg, err := catalog.Select("shoulder")
	require.NoError(t, err)

	custom := tissue.PromoteToCustom(cfg)
	assert.Equal(t, domain.CustomConfigID, custom.ID)
	assert.True(t, custom.IsCustom())

	// Everything except the ID is preserved.
	expected := cfg
	expected.ID = domain.CustomConfigID
	assert.Equal(t, expected, custom)

	// The source config keeps its preset identity.
	assert.Equal(t, "shoulder", cfg.ID)
}
