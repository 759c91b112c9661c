package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisiolab/tenslab-api/internal/domain"
	"github.com/fisiolab/tenslab-api/internal/store"
)

// stubDB implements store.DBTX with canned responses, letting the
// exec-based store paths run without a database.
type stubDB struct {
	execResult sql.Result
	execErr    error
	execCalls  int
}

func (s *stubDB) ExecContext(
	_ context.Context, _ string, _ ...any,
) (sql.Result, error) {
	s.execCalls++
	return s.execResult, s.execErr
}

func (s *stubDB) PrepareContext(_ context.Context, _ string) (*sql.Stmt, error) {
	return nil, nil
}

func (s *stubDB) QueryContext(_ context.Context, _ string, _ ...any) (*sql.Rows, error) {
	return nil, sql.ErrConnDone
}

func (s *stubDB) QueryRowContext(_ context.Context, _ string, _ ...any) *sql.Row {
	return nil
}

type stubResult struct {
	rowsAffected int64
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.rowsAffected, nil }

func validSavedConfig(t *testing.T) *domain.SavedTissueConfig {
	t.Helper()
	saved, err := domain.NewSavedTissueConfig("Test config", domain.TissueConfig{
		ID:                   "forearm",
		SkinThickness:        0.15,
		FatThickness:         0.25,
		MuscleThickness:      0.50,
		BoneDepth:            0.55,
		EnableRiskSimulation: true,
	})
	require.NoError(t, err)
	return saved
}

func TestNewPostgresTissueConfigStorePanicsOnNilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresTissueConfigStore(nil, nil)
	})
}

func TestCreateRejectsInvalidConfigBeforeQuerying(t *testing.T) {
	t.Parallel()

	db := &stubDB{}
	configStore := NewPostgresTissueConfigStore(db, nil)

	invalid := validSavedConfig(t)
	invalid.Label = ""

	err := configStore.Create(context.Background(), invalid)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.Zero(t, db.execCalls, "validation failure must not reach the database")
}

func TestCreateMapsUniqueViolationToDuplicate(t *testing.T) {
	t.Parallel()

	db := &stubDB{execErr: &pgconn.PgError{Code: "23505"}}
	configStore := NewPostgresTissueConfigStore(db, nil)

	err := configStore.Create(context.Background(), validSavedConfig(t))
	assert.ErrorIs(t, err, store.ErrDuplicate)
}

func TestUpdateReportsMissingConfig(t *testing.T) {
	t.Parallel()

	db := &stubDB{execResult: stubResult{rowsAffected: 0}}
	configStore := NewPostgresTissueConfigStore(db, nil)

	err := configStore.Update(context.Background(), validSavedConfig(t))
	assert.ErrorIs(t, err, store.ErrTissueConfigNotFound)
}

func TestUpdateBumpsTimestampOnSuccess(t *testing.T) {
	t.Parallel()

	db := &stubDB{execResult: stubResult{rowsAffected: 1}}
	configStore := NewPostgresTissueConfigStore(db, nil)

	saved := validSavedConfig(t)
	before := saved.UpdatedAt

	require.NoError(t, configStore.Update(context.Background(), saved))
	assert.True(t, saved.UpdatedAt.After(before) || saved.UpdatedAt.Equal(before))
	assert.Equal(t, 1, db.execCalls)
}

func TestDeleteReportsMissingConfig(t *testing.T) {
	t.Parallel()

	db := &stubDB{execResult: stubResult{rowsAffected: 0}}
	configStore := NewPostgresTissueConfigStore(db, nil)

	err := configStore.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTissueConfigNotFound)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(sql.ErrConnDone))
	assert.False(t, isUniqueViolation(nil))
}

func TestIsForeignKeyViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isForeignKeyViolation(nil))
}
