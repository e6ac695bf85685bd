// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.True(t, cfg.Database.AutoMigrate)
}

func TestLoadAutoMigrateDisabled(t *testing.T) {
	t.Setenv("DB_AUTO_MIGRATE", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Database.AutoMigrate)
}

func TestValidateProductionRequiresSecrets(t *testing.T) {
	cfg := &Config{Environment: "production"}
	assert.Error(t, cfg.Validate())

	cfg.Database.Password = "pw"
	assert.Error(t, cfg.Validate())

	cfg.Admin.DeletePassword = "secret"
	assert.NoError(t, cfg.Validate())
}
