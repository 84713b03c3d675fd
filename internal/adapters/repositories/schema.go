package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/justzen0/random-walker/internal/platform/db"
)

// InitSchema creates the walk history and network cache tables.
func InitSchema(ctx context.Context, conn *sql.DB, driver string) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	blobType := "BLOB"
	if driver == db.DriverPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
		blobType = "BYTEA"
	}

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWalksQuery := `
	CREATE TABLE IF NOT EXISTS walks (
		` + idColumn + `,
		created_at TEXT NOT NULL,
		start_lat DOUBLE PRECISION NOT NULL,
		start_lon DOUBLE PRECISION NOT NULL,
		target_km DOUBLE PRECISION NOT NULL,
		tolerance DOUBLE PRECISION NOT NULL,
		length_m DOUBLE PRECISION NOT NULL,
		attempts INTEGER NOT NULL,
		maps_url TEXT NOT NULL,
		path TEXT NOT NULL,
		waypoints TEXT NOT NULL
	);
	`

	createNetworkCacheQuery := `
	CREATE TABLE IF NOT EXISTS network_cache (
		cache_key TEXT PRIMARY KEY,
		data ` + blobType + ` NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	statements := []string{
		createWalksQuery,
		createNetworkCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
