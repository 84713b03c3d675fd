package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
)

// FileNetworkCache stores network snapshots as JSON files, one per key.
type FileNetworkCache struct {
	Dir string
}

func NewFileNetworkCache(dir string) *FileNetworkCache {
	return &FileNetworkCache{Dir: dir}
}

func (c *FileNetworkCache) path(key string) string {
	return filepath.Join(c.Dir, key+".json")
}

// Load reads the snapshot for key, or returns domain.ErrCacheMiss.
func (c *FileNetworkCache) Load(ctx context.Context, key string) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "network.cache.file.Load")(&err)

	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		obs.NetworkCache.WithLabelValues("file", "miss").Inc()
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		obs.NetworkCache.WithLabelValues("file", "error").Inc()
		return nil, fmt.Errorf("file cache load %q: %w", key, err)
	}

	n, err := decodeNetwork(data)
	if err != nil {
		obs.NetworkCache.WithLabelValues("file", "error").Inc()
		return nil, fmt.Errorf("file cache load %q: %w", key, err)
	}

	obs.NetworkCache.WithLabelValues("file", "hit").Inc()
	return n, nil
}

// Save writes the snapshot atomically: a temp file renamed over the target.
func (c *FileNetworkCache) Save(ctx context.Context, key string, n *domain.Network) (err error) {
	defer obs.Time(ctx, "network.cache.file.Save")(&err)

	data, err := encodeNetwork(n)
	if err != nil {
		return fmt.Errorf("file cache save %q: %w", key, err)
	}

	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("file cache save %q: create dir: %w", key, err)
	}

	tmp, err := os.CreateTemp(c.Dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("file cache save %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file cache save %q: write: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file cache save %q: close: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		return fmt.Errorf("file cache save %q: rename: %w", key, err)
	}

	return nil
}
