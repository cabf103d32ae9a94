package database

import (
	"testing"

	modelspkg "accessdesk/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesAccessRequest(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.AccessRequest); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include AccessRequest")
}
