package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/shift-engine/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "America/New_York", cfg.Schedule.BusinessTimezone)
	assert.Equal(t, 10.0, cfg.Schedule.PeerOverlapTolerance)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:8080"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DATABASE_PATH", ":memory:")
	t.Setenv("SCHEDULE_BUSINESS_TIMEZONE", "Europe/Paris")
	t.Setenv("SCHEDULE_PEER_OVERLAP_TOLERANCE", "25.5")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, ":memory:", cfg.Database.Path)
	assert.Equal(t, "Europe/Paris", cfg.Schedule.BusinessTimezone)
	assert.Equal(t, 25.5, cfg.Schedule.PeerOverlapTolerance)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Run("unparsable port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "eighty")
		_, err := config.LoadConfig()
		assert.Error(t, err)
	})

	t.Run("negative tolerance", func(t *testing.T) {
		t.Setenv("SCHEDULE_PEER_OVERLAP_TOLERANCE", "-1")
		_, err := config.LoadConfig()
		assert.ErrorContains(t, err, "must not be negative")
	})
}
