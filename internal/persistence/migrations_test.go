package persistence

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/fraud-desk/internal/config"
)

func TestMigrationFilesSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.sql", "0001_a.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("--"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0003_dir.sql"), 0o700))

	files, err := migrationFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.sql", "0002_b.sql"}, files)
}

func TestMigrationFilesMissingDir(t *testing.T) {
	_, err := migrationFiles(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestRepositoryMigrationsExist(t *testing.T) {
	files, err := migrationFiles(filepath.Join("..", "..", DefaultMigrationsDir))
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_complaints.sql", "0002_complaint_transitions.sql", "0003_transition_text_ids.sql"}, files)
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	require.NoError(t, RunMigrations(context.Background(), nil, "unused", zap.NewNop()))
}

func TestPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), emptyPostgresConfig(), "fraud-desk", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func emptyPostgresConfig() config.PostgresConfig {
	return config.PostgresConfig{}
}
