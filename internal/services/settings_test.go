package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// dryRunDB compiles statements without a server so tests can assert
// the SQL a write produces. Registered callback records each create.
func dryRunDB(t *testing.T) (*gorm.DB, *[]string) {
	t.Helper()
	db, err := gorm.Open(postgres.Open("host=127.0.0.1 port=1 user=curugmara dbname=curugmara sslmode=disable"), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 glogger.Default.LogMode(glogger.Silent),
	})
	require.NoError(t, err)

	statements := &[]string{}
	err = db.Callback().Create().After("gorm:create").Register("record_sql", func(tx *gorm.DB) {
		*statements = append(*statements, tx.Statement.SQL.String())
	})
	require.NoError(t, err)
	return db, statements
}

func TestUpsertWritesConflictUpdate(t *testing.T) {
	db, statements := dryRunDB(t)
	svc := NewSettingsService(db)

	_, err := svc.Upsert(context.Background(), "hero", datatypes.JSON(`{"title":"Curug Mara"}`), false)
	require.NoError(t, err)

	require.Len(t, *statements, 1)
	sql := (*statements)[0]
	assert.Contains(t, sql, `INSERT INTO "site_settings"`)
	assert.Contains(t, sql, `ON CONFLICT ("section_key") DO UPDATE SET`)
	assert.Contains(t, sql, `RETURNING`)
}

func TestUpsertRepeatTargetsSameRow(t *testing.T) {
	// Replaying the same key/value write compiles to the identical
	// conflict-update statement, so a repeat upsert updates the row in
	// place and a duplicate key cannot appear. The unique index on
	// section_key enforces the same at the store.
	db, statements := dryRunDB(t)
	svc := NewSettingsService(db)

	value := datatypes.JSON(`{"title":"Curug Mara"}`)
	first, err := svc.Upsert(context.Background(), "hero", value, false)
	require.NoError(t, err)
	second, err := svc.Upsert(context.Background(), "hero", value, false)
	require.NoError(t, err)

	require.Len(t, *statements, 2)
	assert.Equal(t, (*statements)[0], (*statements)[1])
	assert.Equal(t, first.SectionKey, second.SectionKey)
	assert.Equal(t, first.Value, second.Value)
}
