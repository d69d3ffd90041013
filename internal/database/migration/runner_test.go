package migration

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_Embedded(t *testing.T) {
	migs, err := loadMigrations(Runner{}.source())
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "create_users", migs[0].Name)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS users")
}

func TestLoadMigrations_OrderAndFilter(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("SELECT 2;")},
		"V1__first.sql":  {Data: []byte("SELECT 1;")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := loadMigrations(fsys)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "second", migs[1].Name)
	assert.NotEqual(t, migs[0].Checksum, migs[1].Checksum)
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  ")}})
	assert.ErrorContains(t, err, "empty migration file")

	_, err = loadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")
}
