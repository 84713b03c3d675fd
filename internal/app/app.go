// Package app assembles the adapters behind the ports for the commands.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/justzen0/random-walker/internal/adapters/cache"
	"github.com/justzen0/random-walker/internal/adapters/network"
	"github.com/justzen0/random-walker/internal/adapters/overpass"
	"github.com/justzen0/random-walker/internal/adapters/repositories"
	"github.com/justzen0/random-walker/internal/config"
	"github.com/justzen0/random-walker/internal/platform/db"
	"github.com/justzen0/random-walker/internal/ports"
	"github.com/justzen0/random-walker/internal/services"
)

// App holds the wired dependencies shared by the server and the CLI.
type App struct {
	DB    *sql.DB
	Graph *network.Graph
	Walks *services.WalkService

	closers []func()
}

// Bootstrap opens the walk history, loads (or downloads) the area network
// and builds the walk service.
func Bootstrap(ctx context.Context, cfg *config.Config) (_ *App, err error) {
	a := &App{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	conn, err := OpenDatabase(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	a.DB = conn
	a.closers = append(a.closers, func() { conn.Close() })

	networkCache, err := a.networkCache(cfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	loader := &services.NetworkLoader{
		Cache:  networkCache,
		Source: overpass.NewClient(cfg.Network.OverpassURL, cfg.Network.OverpassTimeout),
	}
	snapshot, err := loader.Load(ctx, cfg.Area.Area())
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	graph, err := network.New(snapshot)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}
	a.Graph = graph
	slog.InfoContext(ctx, "road network ready",
		"area", graph.Name(), "nodes", graph.NodeCount(), "edges", graph.EdgeCount())

	a.Walks = &services.WalkService{
		Network:       graph,
		Repo:          repositories.NewSQLWalkRepository(conn, cfg.Database.Driver),
		MaxSnapMeters: cfg.Area.RadiusKm * 1000,
		Defaults: services.WalkDefaults{
			Start:         cfg.Walk.Start(),
			TargetKm:      cfg.Walk.TargetKm,
			Tolerance:     cfg.Walk.Tolerance,
			MaxAttempts:   cfg.Walk.MaxAttempts,
			RadiusDivisor: cfg.Walk.RadiusDivisor,
			MaxWaypoints:  cfg.Walk.MaxWaypoints,
		},
	}

	return a, nil
}

func (a *App) networkCache(cfg *config.Config) (ports.NetworkCache, error) {
	switch cfg.Network.Cache {
	case "file":
		return cache.NewFileNetworkCache(cfg.Network.CacheDir), nil
	case "valkey":
		c, err := cache.NewValkeyNetworkCache(cfg.Network.ValkeyAddr, cfg.Network.ValkeyTTL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, c.Close)
		return c, nil
	case "sql":
		return cache.NewSQLNetworkCache(a.DB, cfg.Database.Driver), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown network cache %q", cfg.Network.Cache)
	}
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

// OpenDatabase opens the walk history database and makes sure its schema exists.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	if err := ensureSQLiteDir(cfg); err != nil {
		return nil, err
	}
	conn, err := db.Open(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if err := repositories.InitSchema(ctx, conn, cfg.Driver); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// sqlite does not create missing parent directories.
func ensureSQLiteDir(cfg config.DatabaseConfig) error {
	if cfg.Driver != db.DriverSQLite || cfg.DSN == ":memory:" || strings.HasPrefix(cfg.DSN, "file:") {
		return nil
	}
	if dir := filepath.Dir(cfg.DSN); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create database dir: %w", err)
		}
	}
	return nil
}
