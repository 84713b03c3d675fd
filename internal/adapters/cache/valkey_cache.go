package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
	"github.com/valkey-io/valkey-go"
)

// ValkeyNetworkCache shares network snapshots between instances through
// Valkey (Redis-compatible).
type ValkeyNetworkCache struct {
	client valkey.Client
	prefix string
	ttl    time.Duration
}

// NewValkeyNetworkCache connects to addr. A zero ttl keeps entries forever.
func NewValkeyNetworkCache(addr string, ttl time.Duration) (*ValkeyNetworkCache, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return NewValkeyNetworkCacheWithClient(client, ttl), nil
}

// NewValkeyNetworkCacheWithClient wraps an existing client.
func NewValkeyNetworkCacheWithClient(client valkey.Client, ttl time.Duration) *ValkeyNetworkCache {
	return &ValkeyNetworkCache{client: client, prefix: "walker:network:", ttl: ttl}
}

// Load fetches the snapshot for key, or returns domain.ErrCacheMiss.
func (c *ValkeyNetworkCache) Load(ctx context.Context, key string) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "network.cache.valkey.Load")(&err)

	data, err := c.client.Do(ctx, c.client.B().Get().Key(c.prefix+key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		obs.NetworkCache.WithLabelValues("valkey", "miss").Inc()
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		obs.NetworkCache.WithLabelValues("valkey", "error").Inc()
		return nil, fmt.Errorf("valkey cache load %q: %w", key, err)
	}

	n, err := decodeNetwork(data)
	if err != nil {
		obs.NetworkCache.WithLabelValues("valkey", "error").Inc()
		return nil, fmt.Errorf("valkey cache load %q: %w", key, err)
	}

	obs.NetworkCache.WithLabelValues("valkey", "hit").Inc()
	return n, nil
}

// Save stores the snapshot under key with the configured TTL.
func (c *ValkeyNetworkCache) Save(ctx context.Context, key string, n *domain.Network) (err error) {
	defer obs.Time(ctx, "network.cache.valkey.Save")(&err)

	data, err := encodeNetwork(n)
	if err != nil {
		return fmt.Errorf("valkey cache save %q: %w", key, err)
	}

	set := c.client.B().Set().Key(c.prefix + key).Value(valkey.BinaryString(data))
	if c.ttl > 0 {
		err = c.client.Do(ctx, set.Ex(c.ttl).Build()).Error()
	} else {
		err = c.client.Do(ctx, set.Build()).Error()
	}
	if err != nil {
		return fmt.Errorf("valkey cache save %q: %w", key, err)
	}

	return nil
}

// Close releases the client.
func (c *ValkeyNetworkCache) Close() {
	c.client.Close()
}
