package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
	"github.com/justzen0/random-walker/internal/ports"
)

// NetworkLoader returns the pedestrian network for an area, downloading it
// only when the cache has no copy.
type NetworkLoader struct {
	Cache  ports.NetworkCache // optional
	Source ports.NetworkSource
}

// CacheKey derives the cache key from the first component of an area name:
// "Kolkata, West Bengal, India" -> "kolkata_walk_network".
func CacheKey(areaName string) string {
	place, _, _ := strings.Cut(areaName, ",")
	place = strings.ToLower(strings.TrimSpace(place))
	place = strings.Join(strings.Fields(place), "_")
	if place == "" {
		return "walk_network"
	}
	return place + "_walk_network"
}

// Load returns the cached network for area or fetches and caches it.
// A failing cache write is logged; the fetched network is still returned.
func (l *NetworkLoader) Load(ctx context.Context, area domain.Area) (_ *domain.Network, err error) {
	defer obs.Time(ctx, "services.NetworkLoader.Load")(&err)

	key := CacheKey(area.Name)

	if l.Cache != nil {
		network, err := l.Cache.Load(ctx, key)
		switch {
		case err == nil:
			slog.InfoContext(ctx, "network loaded from cache",
				"key", key, "nodes", len(network.Nodes), "edges", len(network.Edges))
			return network, nil
		case errors.Is(err, domain.ErrCacheMiss):
			slog.InfoContext(ctx, "network not cached, downloading", "key", key, "area", area.Name)
		default:
			slog.WarnContext(ctx, "network cache read failed, downloading", "key", key, "err", err)
		}
	}

	if l.Source == nil {
		return nil, fmt.Errorf("load network %q: not cached and no source configured", key)
	}

	network, err := l.Source.Fetch(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("load network %q: %w", key, err)
	}
	if network.Name == "" {
		network.Name = area.Name
	}

	if l.Cache != nil {
		if err := l.Cache.Save(ctx, key, network); err != nil {
			slog.WarnContext(ctx, "network cache write failed", "key", key, "err", err)
		}
	}

	slog.InfoContext(ctx, "network downloaded",
		"key", key, "nodes", len(network.Nodes), "edges", len(network.Edges))

	return network, nil
}
