package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerEnabled(t *testing.T) {
	t.Parallel()

	m := NewManager("open_signup=on, legacy_login=off, beta_catalog=50%, broken=, =x")

	t.Run("on and off values", func(t *testing.T) {
		assert.True(t, m.Enabled("open_signup", 0))
		assert.False(t, m.Enabled("legacy_login", 1))
	})

	t.Run("unknown flag is off", func(t *testing.T) {
		assert.False(t, m.Enabled("does_not_exist", 1))
	})

	t.Run("malformed pairs are ignored", func(t *testing.T) {
		assert.False(t, m.Enabled("broken", 1))
	})

	t.Run("percentage rollout is deterministic per user", func(t *testing.T) {
		first := m.Enabled("beta_catalog", 42)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, m.Enabled("beta_catalog", 42))
		}
	})

	t.Run("zero user never gets a percentage flag", func(t *testing.T) {
		assert.False(t, m.Enabled("beta_catalog", 0))
	})

	t.Run("nil manager is safe", func(t *testing.T) {
		var nilManager *Manager
		assert.False(t, nilManager.Enabled("open_signup", 1))
	})
}

func TestManagerRawAndSnapshot(t *testing.T) {
	t.Parallel()

	m := NewManager("open_signup=on,legacy_login=off")

	raw := m.Raw()
	assert.Equal(t, "on", raw["open_signup"])
	assert.Equal(t, "off", raw["legacy_login"])

	// Mutating the copy must not affect the manager.
	raw["open_signup"] = "off"
	assert.True(t, m.Enabled("open_signup", 1))

	snap := m.Snapshot(1)
	assert.True(t, snap["open_signup"])
	assert.False(t, snap["legacy_login"])
}
