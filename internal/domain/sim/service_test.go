package sim

import (
	"testing"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

func TestServiceRejectsInvalidMode(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	input := domain.TensParameters{
		FrequencyHz: 100, PulseWidthUs: 200, IntensitymA: 40, Mode: "ramped",
	}

	if _, err := service.SimulateTens(input); err == nil {
		t.Errorf("Expected error for invalid mode, got nil")
	}
	if _, err := service.SimulateTissueRisk(input, domain.TissueConfig{
		ID: "forearm", EnableRiskSimulation: true,
	}); err == nil {
		t.Errorf("Expected error for invalid mode, got nil")
	}
}

func TestServiceSimulateTens(t *testing.T) {
	t.Parallel()
	service := NewDefaultService()

	got, err := service.SimulateTens(domain.TensParameters{
		FrequencyHz: 80, PulseWidthUs: 200, IntensitymA: 20, Mode: domain.ModeConventional,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	expected := domain.SimulationResult{
		ComfortLevel:    66,
		ActivationLevel: 26,
		ComfortMessage:  domain.ComfortMessageModerate,
	}
	if got != expected {
		t.Errorf("Expected %+v, got %+v", expected, got)
	}
}

func TestNewParamsOverrides(t *testing.T) {
	t.Parallel()

	t.Run("zero config keeps defaults", func(t *testing.T) {
		params := NewParams(ParamsConfig{})
		defaults := NewDefaultParams()

		if *params != *defaults {
			t.Errorf("Expected defaults %+v, got %+v", *defaults, *params)
		}
	})

	t.Run("positive fields override defaults", func(t *testing.T) {
		params := NewParams(ParamsConfig{
			MetalImplantMultiplier: 2.0,
			HighRiskThreshold:      90,
		})

		if params.MetalImplantMultiplier != 2.0 {
			t.Errorf("Expected implant multiplier 2.0, got %v", params.MetalImplantMultiplier)
		}
		if params.HighRiskThreshold != 90 {
			t.Errorf("Expected high risk threshold 90, got %d", params.HighRiskThreshold)
		}
		if params.ShallowBoneMultiplier != 1.25 {
			t.Errorf("Unrelated default changed: %v", params.ShallowBoneMultiplier)
		}
	})
}
