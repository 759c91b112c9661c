package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

func validTissueConfig() domain.TissueConfig {
	return domain.TissueConfig{
		ID:              "forearm",
		Label:           "Forearm",
		SkinThickness:   0.15,
		FatThickness:    0.25,
		MuscleThickness: 0.50,
		BoneDepth:       0.55,
		Inclusions: []domain.TissueInclusion{
			{ID: uuid.New(), Type: domain.InclusionBone, Depth: 0.4, Span: 0.3, Position: 0.5},
		},
		EnableRiskSimulation: true,
	}
}

func TestTissueConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validTissueConfig().Validate())
	})

	t.Run("empty ID is rejected", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		config.ID = ""
		assert.ErrorIs(t, config.Validate(), domain.ErrInvalidID)
	})

	t.Run("implant flag requires geometry fields", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		config.HasMetalImplant = true
		assert.ErrorIs(t, config.Validate(), domain.ErrImplantFieldsMissing)

		config.MetalImplantDepth = 0.4
		config.MetalImplantSpan = 0.2
		assert.NoError(t, config.Validate())
	})

	t.Run("invalid inclusion type is rejected", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		config.Inclusions = append(config.Inclusions, domain.TissueInclusion{
			ID: uuid.New(), Type: "cartilage", Depth: 0.3, Span: 0.2, Position: 0.5,
		})
		assert.ErrorIs(t, config.Validate(), domain.ErrInvalidInclusionType)
	})

	t.Run("inclusion with nil ID is rejected", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		config.Inclusions = append(config.Inclusions, domain.TissueInclusion{
			Type: domain.InclusionBone, Depth: 0.3, Span: 0.2, Position: 0.5,
		})
		assert.ErrorIs(t, config.Validate(), domain.ErrInvalidID)
	})
}

func TestTissueConfigClone(t *testing.T) {
	t.Parallel()

	original := validTissueConfig()
	clone := original.Clone()

	require.Equal(t, original, clone)

	// Mutating the clone's inclusions must not touch the original.
	clone.Inclusions[0].Depth = 0.9
	clone.Inclusions = append(clone.Inclusions, domain.TissueInclusion{
		ID: uuid.New(), Type: domain.InclusionMetalImplant, Depth: 0.5, Span: 0.3, Position: 0.5,
	})

	assert.Equal(t, 0.4, original.Inclusions[0].Depth)
	assert.Len(t, original.Inclusions, 1)
}

func TestTissueConfigIsCustom(t *testing.T) {
	t.Parallel()

	assert.False(t, validTissueConfig().IsCustom())

	custom := validTissueConfig()
	custom.ID = domain.CustomConfigID
	assert.True(t, custom.IsCustom())
}

func TestInclusionTypeValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.InclusionBone.Valid())
	assert.True(t, domain.InclusionMetalImplant.Valid())
	assert.False(t, domain.InclusionType("").Valid())
	assert.False(t, domain.InclusionType("titanium").Valid())
}

func TestNewSavedTissueConfig(t *testing.T) {
	t.Parallel()

	t.Run("creates valid saved config tagged as custom", func(t *testing.T) {
		t.Parallel()
		saved, err := domain.NewSavedTissueConfig("My forearm", validTissueConfig())
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.Equal(t, "My forearm", saved.Label)
		assert.Equal(t, domain.CustomConfigID, saved.Config.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.False(t, saved.UpdatedAt.IsZero())
	})

	t.Run("empty label is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := domain.NewSavedTissueConfig("", validTissueConfig())
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("invalid config is rejected", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		config.HasMetalImplant = true
		_, err := domain.NewSavedTissueConfig("Implant", config)
		assert.ErrorIs(t, err, domain.ErrImplantFieldsMissing)
	})

	t.Run("does not alias the input config", func(t *testing.T) {
		t.Parallel()
		config := validTissueConfig()
		saved, err := domain.NewSavedTissueConfig("Aliasing", config)
		require.NoError(t, err)

		config.Inclusions[0].Depth = 0.9
		assert.Equal(t, 0.4, saved.Config.Inclusions[0].Depth)
	})
}
