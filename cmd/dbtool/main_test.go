package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justzen0/random-walker/internal/adapters/repositories"
	"github.com/justzen0/random-walker/internal/app"
	"github.com/justzen0/random-walker/internal/config"
	"github.com/justzen0/random-walker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunUsesConfiguredDatabase(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("database:\n  dsn: history/walks.db\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	require.Equal(t, "history/walks.db", cfg.Database.DSN)

	ctx := context.Background()
	conn, err := app.OpenDatabase(ctx, cfg.Database)
	require.NoError(t, err)
	start := domain.GeoPoint{Lat: 22.53106, Lon: 88.400831}
	require.NoError(t, repositories.NewSQLWalkRepository(conn, cfg.Database.Driver).SaveWalk(ctx, &domain.Walk{
		CreatedAt:    time.Date(2026, 3, 14, 7, 0, 0, 0, time.UTC),
		Start:        start,
		TargetKm:     4,
		Tolerance:    0.15,
		LengthMeters: 4120,
		Attempts:     2,
		Path:         []domain.GeoPoint{start, start},
		Waypoints:    []domain.GeoPoint{start, start},
		MapsURL:      "https://www.google.com/maps/dir/22.53106,88.400831/22.53106,88.400831",
	}))
	require.NoError(t, conn.Close())

	var out bytes.Buffer
	require.NoError(t, run(ctx, cfg.Database, 10, &out))

	assert.FileExists(t, filepath.Join(dir, "history", "walks.db"))
	assert.Contains(t, out.String(), "#1  2026-03-14 07:00  4.12 km (target 4.0 km)")
}
