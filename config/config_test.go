package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, "authenticated", cfg.JWT.Audience)
	assert.Equal(t, 120*time.Minute, cfg.SessionTTL())
	assert.Equal(t, 10000, cfg.Editor.MaxSessions)
	assert.Contains(t, cfg.DSN(), "dbname=gridiron")
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9000")
	t.Setenv("EDITOR_SESSION_TTL_MINUTES", "5")
	t.Setenv("FORMATION_CATALOG_PATH", "/etc/gridiron/catalog.yaml")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL())
	assert.Equal(t, "/etc/gridiron/catalog.yaml", cfg.Editor.CatalogPath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("bad ttl", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("EDITOR_SESSION_TTL_MINUTES", "soon")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("non positive sessions", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "s")
		t.Setenv("EDITOR_MAX_SESSIONS", "0")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
