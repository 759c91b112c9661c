package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/platform/logger"
	"github.com/fisiolab/tenslab-api/internal/store"
)

// PostgresTissueConfigStore implements the store.TissueConfigStore
// interface using a PostgreSQL database as the storage backend. The tissue
// configuration itself is stored as JSONB.
type PostgresTissueConfigStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTissueConfigStore creates a new PostgreSQL implementation of
// the TissueConfigStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTissueConfigStore(db store.DBTX, logger *slog.Logger) *PostgresTissueConfigStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTissueConfigStore{
		db:     db,
		logger: logger.With(slog.String("component", "tissue_config_store")),
	}
}

// Ensure PostgresTissueConfigStore implements store.TissueConfigStore interface
var _ store.TissueConfigStore = (*PostgresTissueConfigStore)(nil)

// Create implements store.TissueConfigStore.Create
// It saves a new tissue configuration to the database, handling domain
// validation. Returns store.ErrDuplicate if the ID already exists.
func (s *PostgresTissueConfigStore) Create(
	ctx context.Context,
	config *domain.SavedTissueConfig,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := config.Validate(); err != nil {
		log.Warn("tissue config validation failed during create",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	configJSON, err := json.Marshal(config.Config)
	if err != nil {
		log.Error("failed to marshal tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return fmt.Errorf("failed to marshal tissue config: %w", err)
	}

	query := `
		INSERT INTO tissue_configs (id, label, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		config.ID,
		config.Label,
		configJSON,
		config.CreatedAt,
		config.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate tissue config ID during create",
				slog.String("config_id", config.ID.String()))
			return fmt.Errorf("%w: tissue config with ID %s", store.ErrDuplicate, config.ID)
		}

		log.Error("failed to create tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return err
	}

	log.Info("tissue config created successfully",
		slog.String("config_id", config.ID.String()),
		slog.String("label", config.Label))
	return nil
}

// GetByID implements store.TissueConfigStore.GetByID
// It retrieves a saved tissue configuration by its unique ID.
// Returns store.ErrTissueConfigNotFound if the configuration does not exist.
func (s *PostgresTissueConfigStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.SavedTissueConfig, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving tissue config by ID", slog.String("config_id", id.String()))

	query := `
		SELECT id, label, config, created_at, updated_at
		FROM tissue_configs
		WHERE id = $1
	`

	var saved domain.SavedTissueConfig
	var configJSON []byte

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&saved.ID,
		&saved.Label,
		&configJSON,
		&saved.CreatedAt,
		&saved.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("tissue config not found", slog.String("config_id", id.String()))
			return nil, store.ErrTissueConfigNotFound
		}
		log.Error("failed to get tissue config by ID",
			slog.String("error", err.Error()),
			slog.String("config_id", id.String()))
		return nil, err
	}

	if err := json.Unmarshal(configJSON, &saved.Config); err != nil {
		log.Error("failed to unmarshal stored tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", id.String()))
		return nil, fmt.Errorf("failed to unmarshal tissue config: %w", err)
	}

	log.Debug("tissue config retrieved successfully",
		slog.String("config_id", id.String()))
	return &saved, nil
}

// Update implements store.TissueConfigStore.Update
// It replaces the label and configuration of an existing entry.
// Returns store.ErrTissueConfigNotFound if the configuration does not exist.
func (s *PostgresTissueConfigStore) Update(
	ctx context.Context,
	config *domain.SavedTissueConfig,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := config.Validate(); err != nil {
		log.Warn("tissue config validation failed during update",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	configJSON, err := json.Marshal(config.Config)
	if err != nil {
		log.Error("failed to marshal tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return fmt.Errorf("failed to marshal tissue config: %w", err)
	}

	updatedAt := time.Now().UTC()

	query := `
		UPDATE tissue_configs
		SET label = $1, config = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		config.Label,
		configJSON,
		updatedAt,
		config.ID,
	)

	if err != nil {
		log.Error("failed to update tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("config_id", config.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("tissue config not found for update",
			slog.String("config_id", config.ID.String()))
		return store.ErrTissueConfigNotFound
	}

	config.UpdatedAt = updatedAt

	log.Info("tissue config updated successfully",
		slog.String("config_id", config.ID.String()),
		slog.String("label", config.Label))
	return nil
}

// Delete implements store.TissueConfigStore.Delete
// It removes a saved configuration by its ID.
// Returns store.ErrTissueConfigNotFound if the configuration does not exist.
func (s *PostgresTissueConfigStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM tissue_configs
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete tissue config",
			slog.String("error", err.Error()),
			slog.String("config_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("config_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("tissue config not found for delete",
			slog.String("config_id", id.String()))
		return store.ErrTissueConfigNotFound
	}

	log.Info("tissue config deleted successfully",
		slog.String("config_id", id.String()))
	return nil
}

// List implements store.TissueConfigStore.List
// It retrieves saved configurations ordered by creation time, newest first.
// Returns an empty slice if none exist.
func (s *PostgresTissueConfigStore) List(
	ctx context.Context,
	limit, offset int,
) ([]*domain.SavedTissueConfig, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 20 // Default limit
	}
	if offset < 0 {
		offset = 0
	}

	log.Debug("listing tissue configs",
		slog.Int("limit", limit),
		slog.Int("offset", offset))

	query := `
		SELECT id, label, config, created_at, updated_at
		FROM tissue_configs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to query tissue configs",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var configs []*domain.SavedTissueConfig
	for rows.Next() {
		var saved domain.SavedTissueConfig
		var configJSON []byte

		err := rows.Scan(
			&saved.ID,
			&saved.Label,
			&configJSON,
			&saved.CreatedAt,
			&saved.UpdatedAt,
		)
		if err != nil {
			log.Error("failed to scan tissue config row",
				slog.String("error", err.Error()))
			return nil, err
		}

		if err := json.Unmarshal(configJSON, &saved.Config); err != nil {
			log.Error("failed to unmarshal stored tissue config",
				slog.String("error", err.Error()),
				slog.String("config_id", saved.ID.String()))
			return nil, fmt.Errorf("failed to unmarshal tissue config: %w", err)
		}

		configs = append(configs, &saved)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no configs found
	if configs == nil {
		configs = []*domain.SavedTissueConfig{}
	}

	log.Debug("listed tissue configs", slog.Int("count", len(configs)))
	return configs, nil
}

// WithTx implements store.TissueConfigStore.WithTx
// It returns a new store instance bound to the provided transaction.
func (s *PostgresTissueConfigStore) WithTx(tx *sql.Tx) store.TissueConfigStore {
	return &PostgresTissueConfigStore{
		db:     tx,
		logger: s.logger,
	}
}
