package tissue

import (
	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// Selection identifies which tissue model a risk computation runs against.
// It is a closed sum type: exactly one of the three variants below. This
// replaces comparing against a stringly-typed "custom" sentinel.
type Selection interface {
	isSelection()
}

// PresetSelection selects a named preset from the catalog.
type PresetSelection struct {
	ID string
}

// SavedSelection selects a previously saved custom configuration by its
// storage ID.
type SavedSelection struct {
	ID uuid.UUID
}

// CustomSelection carries an inline configuration that is not stored
// anywhere, for example the UI's current editing state.
type CustomSelection struct {
	Config domain.TissueConfig
}

func (PresetSelection) isSelection() {}
func (SavedSelection) isSelection()  {}
func (CustomSelection) isSelection() {}
