package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	db, err := New(Config{
		Driver:       DriverSQLite,
		Path:         filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRebind(t *testing.T) {
	query := "UPDATE t SET a = ?, b = ? WHERE id = ?"

	assert.Equal(t, query, Rebind(DriverSQLite, query))
	assert.Equal(t, "UPDATE t SET a = $1, b = $2 WHERE id = $3", Rebind(DriverPostgres, query))
	assert.Equal(t, "SELECT 1", Rebind(DriverPostgres, "SELECT 1"))
}

func TestNew_RejectsUnknownDriver(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	_, err := New(Config{Driver: "oracle"}, logger)
	assert.ErrorContains(t, err, "unsupported database driver")

	_, err = New(Config{Driver: DriverPostgres}, logger)
	assert.ErrorContains(t, err, "requires a dsn")
}

func TestMigrator_EmbeddedSchema(t *testing.T) {
	db := newTestDB(t)
	logger, _ := zap.NewDevelopment()

	migrator, err := NewMigrator(db, logger)
	require.NoError(t, err)

	applied, err := migrator.RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, 1, applied)

	// second run is a no-op
	applied, err = migrator.RunMigrations()
	require.NoError(t, err)
	assert.Equal(t, 0, applied)

	for _, table := range []string{"authorizations", "patients", "providers", "insurances", "practices", "orders", "edi_records"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		assert.NoError(t, err, "table %s", table)
	}
}

func TestMigrator_Status(t *testing.T) {
	db := newTestDB(t)
	logger, _ := zap.NewDevelopment()

	source := fstest.MapFS{
		"001_first.sql":  {Data: []byte("CREATE TABLE first (id INTEGER);")},
		"002_second.sql": {Data: []byte("CREATE TABLE second (id INTEGER);")},
	}
	migrator := NewMigratorFS(db, source, logger)

	statuses, err := migrator.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].Applied)
	assert.Equal(t, "first", statuses[0].Name)

	_, err = migrator.RunMigrations()
	require.NoError(t, err)

	statuses, err = migrator.Status()
	require.NoError(t, err)
	for _, s := range statuses {
		assert.True(t, s.Applied, "migration %d", s.Version)
	}
	assert.Equal(t, 2, statuses[1].Version)
}

func TestMigrator_RejectsBadFilename(t *testing.T) {
	db := newTestDB(t)
	logger, _ := zap.NewDevelopment()

	migrator := NewMigratorFS(db, fstest.MapFS{"init.sql": {Data: []byte("SELECT 1;")}}, logger)

	_, err := migrator.RunMigrations()
	assert.ErrorContains(t, err, "invalid migration filename")
}
