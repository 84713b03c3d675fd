package ports

import (
	"context"

	"github.com/justzen0/random-walker/internal/domain"
)

// Contract for downloading a pedestrian network for an area from a map data provider.
type NetworkSource interface {
	Fetch(ctx context.Context, area domain.Area) (*domain.Network, error)
}

// Contract for persisting network snapshots between runs.
type NetworkCache interface {
	// Return the snapshot stored under key, or domain.ErrCacheMiss.
	Load(ctx context.Context, key string) (*domain.Network, error)
	Save(ctx context.Context, key string, network *domain.Network) error
}
