package migrations_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/customer-pages-service/migrations"
)

func TestFS_ContainsOrderedGooseFiles(t *testing.T) {
	files, err := fs.Glob(migrations.FS(), "*.sql")
	require.NoError(t, err)
	assert.Equal(t, []string{"00001_create_customers.sql", "00002_seed_customers.sql"}, files)

	for _, f := range files {
		body, err := fs.ReadFile(migrations.FS(), f)
		require.NoError(t, err)
		assert.True(t, strings.Contains(string(body), "-- +goose Up"), f)
		assert.True(t, strings.Contains(string(body), "-- +goose Down"), f)
	}
}
