package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
	"github.com/justzen0/random-walker/internal/ports"
)

// WalkDefaults fill in request fields left at their zero value.
type WalkDefaults struct {
	Start         domain.GeoPoint
	TargetKm      float64
	Tolerance     float64
	MaxAttempts   int
	RadiusDivisor float64
	MaxWaypoints  int
}

// WalkRequest asks for one walk. Zero fields take the service defaults;
// a nil Seed draws a fresh one.
type WalkRequest struct {
	Start       *domain.GeoPoint
	TargetKm    float64
	Tolerance   float64
	MaxAttempts int
	Seed        *uint64
}

// SuggestResult carries the walk, when one was found, and the search summary.
// Seed reproduces the search on the same network.
type SuggestResult struct {
	Walk   *domain.Walk
	Search LoopResult
	Seed   uint64
}

// Found reports whether a walk was suggested.
func (r SuggestResult) Found() bool { return r.Walk != nil }

// WalkService suggests walks on a loaded network and keeps a history of them.
type WalkService struct {
	Network ports.RoadNetwork
	Repo    ports.WalkRepository // optional
	// Start points snapping farther than this are refused. Zero disables the check.
	MaxSnapMeters float64
	Defaults      WalkDefaults

	Now func() time.Time
}

// Suggest finds a loop from the requested start and turns it into a Walk.
func (s *WalkService) Suggest(ctx context.Context, req WalkRequest) (_ SuggestResult, err error) {
	defer obs.Time(ctx, "services.WalkService.Suggest")(&err)
	defer func() {
		if err != nil {
			obs.WalksTotal.WithLabelValues("error").Inc()
		}
	}()

	start := s.Defaults.Start
	if req.Start != nil {
		start = *req.Start
	}
	if err := start.Validate(); err != nil {
		return SuggestResult{}, fmt.Errorf("suggest walk: start: %w", err)
	}

	opts := LoopOptions{
		TargetKm:      orFloat(req.TargetKm, s.Defaults.TargetKm),
		Tolerance:     orFloat(req.Tolerance, s.Defaults.Tolerance),
		MaxAttempts:   orInt(req.MaxAttempts, orInt(s.Defaults.MaxAttempts, DefaultMaxAttempts)),
		RadiusDivisor: s.Defaults.RadiusDivisor,
	}
	if err := opts.Validate(); err != nil {
		return SuggestResult{}, fmt.Errorf("suggest walk: %w", err)
	}

	startNode, snapMeters, err := s.Network.NearestNode(start)
	if err != nil {
		return SuggestResult{}, fmt.Errorf("suggest walk: snap start: %w", err)
	}
	if s.MaxSnapMeters > 0 && snapMeters > s.MaxSnapMeters {
		return SuggestResult{}, fmt.Errorf("suggest walk: %w: nearest node is %.0f m away, limit %.0f m",
			domain.ErrStartTooFar, snapMeters, s.MaxSnapMeters)
	}

	var seed uint64
	if req.Seed != nil {
		seed = *req.Seed
	} else {
		seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	search, err := BuildLoop(ctx, s.Network, rng, startNode, opts)
	if err != nil {
		return SuggestResult{Search: search, Seed: seed}, fmt.Errorf("suggest walk: %w", err)
	}
	result := SuggestResult{Search: search, Seed: seed}
	if !search.Found() {
		obs.WalksTotal.WithLabelValues("not_found").Inc()
		return result, nil
	}

	walk, err := s.toWalk(start, opts, search)
	if err != nil {
		return result, fmt.Errorf("suggest walk: %w", err)
	}

	if s.Repo != nil {
		if err := s.Repo.SaveWalk(ctx, walk); err != nil {
			return result, fmt.Errorf("suggest walk: save: %w", err)
		}
	}

	obs.WalksTotal.WithLabelValues("found").Inc()
	result.Walk = walk
	return result, nil
}

func (s *WalkService) toWalk(start domain.GeoPoint, opts LoopOptions, search LoopResult) (*domain.Walk, error) {
	path := make([]domain.GeoPoint, len(search.Loop.Nodes))
	for i, id := range search.Loop.Nodes {
		p, err := s.Network.NodeCoordinate(id)
		if err != nil {
			return nil, fmt.Errorf("resolve path: %w", err)
		}
		path[i] = p
	}

	waypoints := ReduceWaypoints(path, orInt(s.Defaults.MaxWaypoints, DefaultMaxWaypoints))

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	return &domain.Walk{
		CreatedAt:    now().UTC(),
		Start:        start,
		TargetKm:     opts.TargetKm,
		Tolerance:    opts.Tolerance,
		LengthMeters: search.Loop.LengthMeters,
		Attempts:     search.Attempts,
		Path:         path,
		Waypoints:    waypoints,
		MapsURL:      MapsDirectionsURL(waypoints),
	}, nil
}

// ListWalks returns the most recent walks, newest first.
func (s *WalkService) ListWalks(ctx context.Context, limit int) ([]*domain.Walk, error) {
	if s.Repo == nil {
		return []*domain.Walk{}, nil
	}
	return s.Repo.ListWalks(ctx, limit)
}

// GetWalk returns a stored walk.
func (s *WalkService) GetWalk(ctx context.Context, id int64) (*domain.Walk, error) {
	if s.Repo == nil {
		return nil, domain.ErrWalkNotFound
	}
	return s.Repo.GetWalk(ctx, id)
}

func orFloat(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func orInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
