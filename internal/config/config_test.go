package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "fittrack", cfg.Database.DBName)
	assert.Equal(t, 10, cfg.Worker.Count)
	assert.Equal(t, 1000, cfg.Worker.QueueSize)
	assert.False(t, cfg.Snapshots.Enabled)
	assert.Equal(t, time.Hour, cfg.Snapshots.Interval)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BACKEND_PORT", "9090")
	t.Setenv("DB_NAME", "fittrack_test")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("SNAPSHOTS_ENABLED", "true")
	t.Setenv("SNAPSHOTS_INTERVAL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "fittrack_test", cfg.Database.DBName)
	assert.Equal(t, 4, cfg.Worker.Count)
	assert.True(t, cfg.Snapshots.Enabled)
	assert.Equal(t, 15*time.Minute, cfg.Snapshots.Interval)
}

func TestGetDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host: "db", Port: 5433, User: "app", Password: "secret",
			DBName: "fittrack", SSLMode: "disable",
		},
	}
	assert.Equal(t,
		"host=db port=5433 user=app password=secret dbname=fittrack sslmode=disable",
		cfg.GetDSN())

	cfg.Database.URL = "postgres://app:secret@db:5433/fittrack"
	assert.Equal(t, "postgres://app:secret@db:5433/fittrack", cfg.GetDSN())
}

func TestGetRedisAddr(t *testing.T) {
	cfg := &Config{Redis: RedisConfig{Host: "cache", Port: 6380}}
	assert.Equal(t, "cache:6380", cfg.GetRedisAddr())
}
