package domain

import (
	"time"

	"github.com/google/uuid"
)

// SavedTissueConfig is a user-authored tissue configuration persisted for
// later reuse. The configuration itself is stored as a JSONB structure so
// the tissue model can evolve without schema churn.
type SavedTissueConfig struct {
	ID        uuid.UUID    `json:"id"`
	Label     string       `json:"label"`
	Config    TissueConfig `json:"config"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewSavedTissueConfig creates a new SavedTissueConfig with the given label
// and configuration. It generates a new UUID and sets the creation/update
// timestamps. The stored configuration is always tagged as custom: saved
// configs are by definition user-authored.
// Returns an error if validation fails.
func NewSavedTissueConfig(label string, config TissueConfig) (*SavedTissueConfig, error) {
	config = config.Clone()
	config.ID = CustomConfigID

	saved := &SavedTissueConfig{
		ID:        uuid.New(),
		Label:     label,
		Config:    config,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := saved.Validate(); err != nil {
		return nil, err
	}

	return saved, nil
}

// Validate checks if the SavedTissueConfig has valid data.
// Returns an error if any field fails validation.
func (s *SavedTissueConfig) Validate() error {
	if s.ID == uuid.Nil {
		return ErrInvalidID
	}

	if s.Label == "" {
		return ErrValidation
	}

	return s.Config.Validate()
}
