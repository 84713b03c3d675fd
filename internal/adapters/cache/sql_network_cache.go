package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/db"
	"github.com/justzen0/random-walker/internal/platform/obs"
)

// SQLNetworkCache keeps network snapshots in the network_cache table next
// to the walk history, for deployments without a writable cache dir or Valkey.
type SQLNetworkCache struct {
	DB     *sql.DB
	Driver string
}

func NewSQLNetworkCache(conn *sql.DB, driver string) *SQLNetworkCache {
	return &SQLNetworkCache{DB: conn, Driver: driver}
}

// Load reads the snapshot for key, or returns domain.ErrCacheMiss.
func (s *SQLNetworkCache) Load(ctx context.Context, key string) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "network.cache.sql.Load")(&err)

	if s.DB == nil {
		return nil, errors.New("network cache: db is nil")
	}

	q := `
	SELECT data
	FROM network_cache
	WHERE cache_key = ?;
	`

	var data []byte
	err = s.DB.QueryRowContext(ctx, db.Rebind(s.Driver, q), key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		obs.NetworkCache.WithLabelValues("sql", "miss").Inc()
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		obs.NetworkCache.WithLabelValues("sql", "error").Inc()
		return nil, fmt.Errorf("get network cache: query network_cache table: %w", err)
	}

	n, err := decodeNetwork(data)
	if err != nil {
		obs.NetworkCache.WithLabelValues("sql", "error").Inc()
		return nil, fmt.Errorf("get network cache %q: %w", key, err)
	}

	obs.NetworkCache.WithLabelValues("sql", "hit").Inc()
	return n, nil
}

// Save upserts the snapshot for key.
func (s *SQLNetworkCache) Save(ctx context.Context, key string, n *domain.Network) (err error) {
	defer obs.Time(ctx, "network.cache.sql.Save")(&err)

	if s.DB == nil {
		return errors.New("network cache: db is nil")
	}

	data, err := encodeNetwork(n)
	if err != nil {
		return fmt.Errorf("put network cache %q: %w", key, err)
	}

	q := `
	INSERT INTO network_cache (cache_key, data, updated_at)
	VALUES (?, ?, ?)
	ON CONFLICT (cache_key) DO UPDATE SET
		data = excluded.data,
		updated_at = excluded.updated_at;
	`

	_, err = s.DB.ExecContext(ctx, db.Rebind(s.Driver, q), key, data, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("put network cache %q: upsert: %w", key, err)
	}

	return nil
}
