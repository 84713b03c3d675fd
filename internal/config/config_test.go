package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate runs the test from an empty directory so no stray config.yaml or .env is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "Kolkata, West Bengal, India", cfg.Area.Name)
	assert.Equal(t, 4.0, cfg.Walk.TargetKm)
	assert.Equal(t, 0.15, cfg.Walk.Tolerance)
	assert.Equal(t, 50, cfg.Walk.MaxAttempts)
	assert.Equal(t, 4.0, cfg.Walk.RadiusDivisor)
	assert.Equal(t, 23, cfg.Walk.MaxWaypoints)
	assert.Equal(t, "file", cfg.Network.Cache)
	assert.Equal(t, 3*time.Minute, cfg.Network.OverpassTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "my_random_walk.txt", cfg.Output.Text)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("WALKER_WALK_TARGET_KM", "6.5")
	t.Setenv("WALKER_NETWORK_CACHE", "valkey")
	t.Setenv("WALKER_NETWORK_VALKEY_TTL", "2h")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, 6.5, cfg.Walk.TargetKm)
	assert.Equal(t, "valkey", cfg.Network.Cache)
	assert.Equal(t, 2*time.Hour, cfg.Network.ValkeyTTL)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	yaml := []byte(`
area:
  name: "Manhattan, New York, USA"
  lat: 40.7831
  lon: -73.9712
walk:
  start_lat: 40.7812
  start_lon: -73.9665
  tolerance: 0.1
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "Manhattan, New York, USA", cfg.Area.Name)
	assert.Equal(t, -73.9712, cfg.Area.Center().Lon)
	assert.Equal(t, 0.1, cfg.Walk.Tolerance)
	assert.Equal(t, 4.0, cfg.Walk.TargetKm)
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("WALKER_WALK_TARGET_KM", "6.5")

	fs := pflag.NewFlagSet("walker", pflag.ContinueOnError)
	fs.Float64("distance", 4, "")
	fs.Float64("lat", 0, "")
	fs.String("output", "", "")
	require.NoError(t, fs.Parse([]string{"--distance", "3", "--output", "walk.txt"}))

	cfg, err := Load(fs)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Walk.TargetKm)
	assert.Equal(t, "walk.txt", cfg.Output.Text)
	// unset flag keeps the default start
	assert.Equal(t, 22.531060, cfg.Walk.StartLat)
}

func TestValidateAggregatesProblems(t *testing.T) {
	isolate(t)
	t.Setenv("WALKER_WALK_TOLERANCE", "1.5")
	t.Setenv("WALKER_NETWORK_CACHE", "redis")
	t.Setenv("WALKER_DATABASE_DRIVER", "mysql")

	_, err := Load(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "walk.tolerance")
	assert.Contains(t, err.Error(), "network.cache")
	assert.Contains(t, err.Error(), "database.driver")
}

func TestGet(t *testing.T) {
	t.Setenv("WALKER_TEST_VALUE", "x")
	assert.Equal(t, "x", Get("WALKER_TEST_VALUE", "y"))
	assert.Equal(t, "y", Get("WALKER_TEST_MISSING", "y"))
}
