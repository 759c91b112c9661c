// Package tissue provides the preset catalog, selection model and
// inclusion editing for anatomical tissue configurations.
package tissue

import (
	"errors"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// Common errors
var (
	// ErrPresetNotFound is returned when a preset ID does not exist in the
	// catalog. Callers are expected to fall back to a saved configuration
	// lookup or the default configuration rather than failing.
	ErrPresetNotFound = errors.New("tissue preset not found")
)

// DefaultPresetID is the preset used when no explicit selection is made
// and as the fallback when a referenced preset or saved configuration
// cannot be resolved.
const DefaultPresetID = "forearm"

// PresetEntry is one named, immutable template in the catalog.
type PresetEntry struct {
	ID     string              `json:"id"`
	Label  string              `json:"label"`
	Config domain.TissueConfig `json:"config"`
}

// Catalog is an immutable keyed registry of tissue presets. Lookups always
// return defensive copies, so catalog entries can never be mutated through
// a selected configuration.
type Catalog struct {
	order   []string
	entries map[string]PresetEntry
}

// NewDefaultCatalog creates the built-in preset catalog.
func NewDefaultCatalog() *Catalog {
	presets := []PresetEntry{
		{
			ID:    "forearm",
			Label: "Slim forearm",
			Config: domain.TissueConfig{
				ID:                   "forearm",
				Label:                "Slim forearm",
				SkinThickness:        0.15,
				FatThickness:         0.25,
				MuscleThickness:      0.50,
				BoneDepth:            0.55,
				EnableRiskSimulation: true,
			},
		},
		{
			ID:    "lumbar",
			Label: "Lower back",
			Config: domain.TissueConfig{
				ID:                   "lumbar",
				Label:                "Lower back",
				SkinThickness:        0.20,
				FatThickness:         0.45,
				MuscleThickness:      0.60,
				BoneDepth:            0.85,
				EnableRiskSimulation: true,
			},
		},
		{
			ID:    "knee",
			Label: "Knee (shallow bone)",
			Config: domain.TissueConfig{
				ID:                   "knee",
				Label:                "Knee (shallow bone)",
				SkinThickness:        0.15,
				FatThickness:         0.15,
				MuscleThickness:      0.30,
				BoneDepth:            0.25,
				EnableRiskSimulation: true,
			},
		},
		{
			ID:    "shoulder",
			Label: "Shoulder",
			Config: domain.TissueConfig{
				ID:                   "shoulder",
				Label:                "Shoulder",
				SkinThickness:        0.18,
				FatThickness:         0.30,
				MuscleThickness:      0.55,
				BoneDepth:            0.60,
				EnableRiskSimulation: true,
			},
		},
	}

	catalog := &Catalog{
		order:   make([]string, 0, len(presets)),
		entries: make(map[string]PresetEntry, len(presets)),
	}
	for _, p := range presets {
		catalog.order = append(catalog.order, p.ID)
		catalog.entries[p.ID] = p
	}

	return catalog
}

// Presets returns the catalog entries in their defined order. Every entry's
// config is an independent copy.
func (c *Catalog) Presets() []PresetEntry {
	result := make([]PresetEntry, 0, len(c.order))
	for _, id := range c.order {
		entry := c.entries[id]
		entry.Config = entry.Config.Clone()
		result = append(result, entry)
	}
	return result
}

// Select returns an independent copy of the preset's stored configuration.
// Mutating the returned config never alters the catalog entry.
// Returns ErrPresetNotFound for unknown IDs.
func (c *Catalog) Select(id string) (domain.TissueConfig, error) {
	entry, ok := c.entries[id]
	if !ok {
		return domain.TissueConfig{}, ErrPresetNotFound
	}
	return entry.Config.Clone(), nil
}

// Contains reports whether the catalog has a preset with the given ID.
func (c *Catalog) Contains(id string) bool {
	_, ok := c.entries[id]
	return ok
}

// DefaultConfig returns a copy of the default tissue configuration.
func (c *Catalog) DefaultConfig() domain.TissueConfig {
	cfg, err := c.Select(DefaultPresetID)
	if err != nil {
		// The default preset is built into the catalog; reaching this
		// means the catalog construction itself is broken.
		// ALLOW-PANIC: invariant of NewDefaultCatalog
		panic("tissue: default preset missing from catalog")
	}
	return cfg
}

// PromoteToCustom tags a configuration as user-authored, preserving all
// field values. Used whenever a user edits any field of a selected preset:
// the preset template itself is never mutated.
func PromoteToCustom(cfg domain.TissueConfig) domain.TissueConfig {
	custom := cfg.Clone()
	custom.ID = domain.CustomConfigID
	return custom
}
