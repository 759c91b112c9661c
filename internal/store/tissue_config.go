package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
)

// TissueConfigStore defines the interface for saved tissue configuration
// persistence. The simulation engine never consumes this directly; the
// service layer resolves saved selections through it and falls back to the
// default configuration when a lookup fails.
type TissueConfigStore interface {
	// Create saves a new tissue configuration to the store.
	// The config must be valid according to domain validation rules.
	// Returns ErrDuplicate if a config with the same ID already exists.
	Create(ctx context.Context, config *domain.SavedTissueConfig) error

	// GetByID retrieves a saved configuration by its unique ID.
	// Returns ErrTissueConfigNotFound if the configuration does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.SavedTissueConfig, error)

	// Update replaces the label and configuration of an existing entry.
	// Returns ErrTissueConfigNotFound if the configuration does not exist.
	// Returns validation errors if the new data is invalid.
	Update(ctx context.Context, config *domain.SavedTissueConfig) error

	// Delete removes a saved configuration from the store by its ID.
	// Returns ErrTissueConfigNotFound if the configuration does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves saved configurations ordered by creation time,
	// newest first. Returns an empty slice when none exist.
	List(ctx context.Context, limit, offset int) ([]*domain.SavedTissueConfig, error)

	// WithTx returns a new TissueConfigStore instance that uses the
	// provided transaction. The transaction is created and managed by the
	// caller, typically through RunInTransaction.
	WithTx(tx *sql.Tx) TissueConfigStore
}
