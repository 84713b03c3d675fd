package services

import (
	"context"
	"errors"
	"testing"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	stored  map[string]*domain.Network
	loadErr error
	saveErr error
	saves   int
}

func (c *fakeCache) Load(_ context.Context, key string) (*domain.Network, error) {
	if c.loadErr != nil {
		return nil, c.loadErr
	}
	n, ok := c.stored[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return n, nil
}

func (c *fakeCache) Save(_ context.Context, key string, n *domain.Network) error {
	c.saves++
	if c.saveErr != nil {
		return c.saveErr
	}
	if c.stored == nil {
		c.stored = map[string]*domain.Network{}
	}
	c.stored[key] = n
	return nil
}

type fakeSource struct {
	fetchFn func(ctx context.Context, area domain.Area) (*domain.Network, error)
	calls   int
}

func (s *fakeSource) Fetch(ctx context.Context, area domain.Area) (*domain.Network, error) {
	s.calls++
	return s.fetchFn(ctx, area)
}

var kolkataArea = domain.Area{Name: "Kolkata, West Bengal, India", Center: kolkata, RadiusKm: 3}

func smallNetwork(context.Context, domain.Area) (*domain.Network, error) {
	return &domain.Network{Nodes: []domain.NetworkNode{{ID: 1, Lat: 22.5, Lon: 88.3}}}, nil
}

func TestCacheKey(t *testing.T) {
	tests := []struct {
		area string
		want string
	}{
		{"Kolkata, West Bengal, India", "kolkata_walk_network"},
		{"Manhattan, New York, USA", "manhattan_walk_network"},
		{"  New   Delhi , India", "new_delhi_walk_network"},
		{"", "walk_network"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CacheKey(tt.area), "CacheKey(%q)", tt.area)
	}
}

func TestNetworkLoaderDownloadsOnceAndCaches(t *testing.T) {
	cache := &fakeCache{}
	src := &fakeSource{fetchFn: smallNetwork}
	loader := &NetworkLoader{Cache: cache, Source: src}

	first, err := loader.Load(context.Background(), kolkataArea)
	require.NoError(t, err)
	assert.Equal(t, "Kolkata, West Bengal, India", first.Name)

	second, err := loader.Load(context.Background(), kolkataArea)
	require.NoError(t, err)
	assert.Same(t, first, second)

	assert.Equal(t, 1, src.calls)
	assert.Contains(t, cache.stored, "kolkata_walk_network")
}

func TestNetworkLoaderCacheWriteFailureIsNotFatal(t *testing.T) {
	cache := &fakeCache{saveErr: errors.New("read-only")}
	loader := &NetworkLoader{Cache: cache, Source: &fakeSource{fetchFn: smallNetwork}}

	n, err := loader.Load(context.Background(), kolkataArea)
	require.NoError(t, err)
	assert.Len(t, n.Nodes, 1)
	assert.Equal(t, 1, cache.saves)
}

func TestNetworkLoaderBrokenCacheFallsBackToSource(t *testing.T) {
	cache := &fakeCache{loadErr: errors.New("corrupt")}
	src := &fakeSource{fetchFn: smallNetwork}
	loader := &NetworkLoader{Cache: cache, Source: src}

	_, err := loader.Load(context.Background(), kolkataArea)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestNetworkLoaderSourceFailure(t *testing.T) {
	boom := errors.New("overpass down")
	loader := &NetworkLoader{Source: &fakeSource{fetchFn: func(context.Context, domain.Area) (*domain.Network, error) {
		return nil, boom
	}}}

	_, err := loader.Load(context.Background(), kolkataArea)
	require.ErrorIs(t, err, boom)
}

func TestNetworkLoaderWithoutSource(t *testing.T) {
	_, err := (&NetworkLoader{Cache: &fakeCache{}}).Load(context.Background(), kolkataArea)
	require.Error(t, err)
}
