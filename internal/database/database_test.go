package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate_SQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(sqlDB, "sqlite3"))
	assert.True(t, db.Migrator().HasTable("posts"))
	assert.True(t, db.Migrator().HasTable("profiles"))

	// Re-running is a no-op.
	require.NoError(t, Migrate(sqlDB, "sqlite3"))
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	assert.Error(t, Migrate(sqlDB, "oracle"))
}

func TestCustomGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	ctx := context.Background()
	query := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(ctx, time.Now(), query, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(ctx, time.Now(), query, errors.New("connection reset"))
	assert.Contains(t, buf.String(), "GORM query error")
	buf.Reset()

	l.Trace(ctx, time.Now().Add(-time.Second), query, nil)
	assert.Contains(t, buf.String(), "GORM slow query")
	buf.Reset()

	l.LogMode(logger.Silent).Trace(ctx, time.Now(), query, errors.New("ignored"))
	assert.Empty(t, buf.String())
}
