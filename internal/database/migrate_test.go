package database

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrations_RegistryIsOrdered(t *testing.T) {
	all := GetMigrations()
	require.NotEmpty(t, all)

	prev := 0
	for _, m := range all {
		assert.Greater(t, m.Version, prev, "versions must be strictly increasing")
		assert.NotEmpty(t, m.Name)
		assert.NotEmpty(t, m.UpScript)
		assert.NotEmpty(t, m.DownScript)
		prev = m.Version
	}
}

func TestGetMigrationByVersion(t *testing.T) {
	m := GetMigrationByVersion(1)
	require.NotNil(t, m)
	assert.Equal(t, "init", m.Name)
	assert.Contains(t, m.UpScript, "access_requests")
	assert.True(t, strings.Contains(m.DownScript, "DROP TABLE"))

	assert.Nil(t, GetMigrationByVersion(999999))
}

func TestMigrationString(t *testing.T) {
	m := GetMigrationByVersion(1)
	require.NotNil(t, m)
	assert.Equal(t, "000001_init", m.String())
}
