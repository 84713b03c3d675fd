package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/justzen0/random-walker/internal/domain"
	"github.com/justzen0/random-walker/internal/platform/obs"
	"github.com/justzen0/random-walker/internal/ports"
)

const (
	// DefaultMaxAttempts bounds the accept/reject search when the caller has no preference.
	DefaultMaxAttempts = 50

	// DefaultRadiusDivisor sets the waypoint sampling radius to targetKm/4.
	// Empirical: a three-leg loop through two points sampled in that disk tends
	// to land near the target length on street networks.
	DefaultRadiusDivisor = 4.0
)

// LoopOptions configure a loop search.
type LoopOptions struct {
	TargetKm    float64
	Tolerance   float64 // fractional band, in (0, 1)
	MaxAttempts int
	// Zero means DefaultRadiusDivisor.
	RadiusDivisor float64
}

// AcceptanceBand returns the accepted loop length range in meters.
func (o LoopOptions) AcceptanceBand() (minMeters, maxMeters float64) {
	return o.TargetKm * (1 - o.Tolerance) * 1000, o.TargetKm * (1 + o.Tolerance) * 1000
}

// SamplingRadiusKm returns the radius waypoints are sampled in.
func (o LoopOptions) SamplingRadiusKm() float64 {
	divisor := o.RadiusDivisor
	if divisor == 0 {
		divisor = DefaultRadiusDivisor
	}
	return o.TargetKm / divisor
}

// Validate fails fast on options no search could satisfy.
func (o LoopOptions) Validate() error {
	if !(o.TargetKm > 0) || math.IsInf(o.TargetKm, 0) {
		return fmt.Errorf("%w: target distance must be a positive number of km, got %v", domain.ErrInvalidInput, o.TargetKm)
	}
	if !(o.Tolerance > 0 && o.Tolerance < 1) {
		return fmt.Errorf("%w: tolerance must be in (0, 1), got %v", domain.ErrInvalidInput, o.Tolerance)
	}
	if o.MaxAttempts < 1 {
		return fmt.Errorf("%w: max attempts must be >= 1, got %d", domain.ErrInvalidInput, o.MaxAttempts)
	}
	if o.RadiusDivisor < 0 || math.IsNaN(o.RadiusDivisor) || math.IsInf(o.RadiusDivisor, 0) {
		return fmt.Errorf("%w: radius divisor must be positive, got %v", domain.ErrInvalidInput, o.RadiusDivisor)
	}
	return nil
}

// RejectReason explains why an attempt was discarded.
type RejectReason int

const (
	// A waypoint snapped to the start node or both waypoints snapped to the same node.
	RejectDegenerate RejectReason = iota
	// One of the three legs has no path.
	RejectNoPath
	// The joined node sequence crosses a pair of nodes with no edge between them.
	RejectMissingEdge
	// The loop passes through the start node before closing.
	RejectRevisitsStart
	// The loop length is outside the acceptance band.
	RejectOutOfTolerance
)

func (r RejectReason) String() string {
	switch r {
	case RejectDegenerate:
		return "degenerate"
	case RejectNoPath:
		return "no_path"
	case RejectMissingEdge:
		return "missing_edge"
	case RejectRevisitsStart:
		return "revisits_start"
	case RejectOutOfTolerance:
		return "out_of_tolerance"
	default:
		return fmt.Sprintf("reject(%d)", int(r))
	}
}

// LoopResult is the outcome of a loop search.
// Loop is nil when every attempt was rejected; that is an expected outcome,
// the caller decides whether to relax the target or tolerance.
type LoopResult struct {
	Loop       *domain.Loop
	Attempts   int
	Rejections map[RejectReason]int
}

// Found reports whether the search produced a loop.
func (r LoopResult) Found() bool { return r.Loop != nil }

// BuildLoop searches for a closed walk start->B->C->start whose length lies in
// the tolerance band around opts.TargetKm.
//
// Each attempt samples two points around the start, snaps them to nodes,
// joins the three shortest paths and measures the joined sequence edge by
// edge. The first loop inside the band wins. Attempts share no state; failed
// ones are discarded. ctx is checked between attempts.
//
// An error is returned only for invalid options, an unknown start node,
// cancellation, or a failing network; running out of attempts is reported
// through LoopResult.Found.
func BuildLoop(
	ctx context.Context,
	network ports.RoadNetwork,
	rng RandSource,
	start domain.NodeID,
	opts LoopOptions,
) (_ LoopResult, err error) {
	defer obs.Time(ctx, "services.BuildLoop")(&err)

	if err := opts.Validate(); err != nil {
		return LoopResult{}, fmt.Errorf("build loop: %w", err)
	}
	if network == nil || rng == nil {
		return LoopResult{}, errors.New("build loop: network and random source must be non-nil")
	}

	startPoint, err := network.NodeCoordinate(start)
	if err != nil {
		return LoopResult{}, fmt.Errorf("build loop: start node: %w", err)
	}

	began := time.Now()
	defer func() { obs.LoopSearchDuration.Observe(time.Since(began).Seconds()) }()

	s := &loopSearch{
		network:    network,
		rng:        rng,
		start:      start,
		startPoint: startPoint,
		radiusKm:   opts.SamplingRadiusKm(),
	}
	s.minMeters, s.maxMeters = opts.AcceptanceBand()

	result := LoopResult{Rejections: make(map[RejectReason]int)}

	for attempt := 1; attempt <= opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("build loop: attempt %d: %w", attempt, err)
		}
		result.Attempts = attempt

		loop, reason, err := s.attempt()
		if err != nil {
			return result, fmt.Errorf("build loop: attempt %d: %w", attempt, err)
		}

		if loop != nil {
			obs.LoopAttempts.WithLabelValues("accepted").Inc()
			slog.InfoContext(ctx, "loop found",
				"attempt", attempt, "max_attempts", opts.MaxAttempts,
				"length_m", math.Round(loop.LengthMeters), "nodes", len(loop.Nodes))
			result.Loop = loop
			return result, nil
		}

		obs.LoopAttempts.WithLabelValues(reason.String()).Inc()
		result.Rejections[reason]++
		slog.DebugContext(ctx, "loop attempt rejected",
			"attempt", attempt, "max_attempts", opts.MaxAttempts, "reason", reason.String())
	}

	slog.InfoContext(ctx, "no suitable loop found",
		"attempts", result.Attempts, "target_km", opts.TargetKm, "tolerance", opts.Tolerance)

	return result, nil
}

// loopSearch holds the per-call constants of a search.
type loopSearch struct {
	network    ports.RoadNetwork
	rng        RandSource
	start      domain.NodeID
	startPoint domain.GeoPoint
	radiusKm   float64
	minMeters  float64
	maxMeters  float64
}

// attempt runs one sample-route-measure round. It returns either a loop, or
// the reason the round was discarded, or an error that ends the search.
func (s *loopSearch) attempt() (*domain.Loop, RejectReason, error) {
	b, err := s.sampleNode()
	if err != nil {
		return nil, 0, err
	}
	c, err := s.sampleNode()
	if err != nil {
		return nil, 0, err
	}

	if b == s.start || c == s.start || b == c {
		return nil, RejectDegenerate, nil
	}

	stops := [4]domain.NodeID{s.start, b, c, s.start}
	var legs [3]domain.PathLeg
	var legsLength float64
	for i := range legs {
		leg, err := s.network.ShortestPath(stops[i], stops[i+1])
		if errors.Is(err, domain.ErrNoPath) {
			return nil, RejectNoPath, nil
		}
		if err != nil {
			return nil, 0, fmt.Errorf("shortest path %d->%d: %w", stops[i], stops[i+1], err)
		}
		legs[i] = leg
		legsLength += leg.LengthMeters
	}

	nodes, err := domain.JoinLegs(legs[:]...)
	if err != nil {
		return nil, 0, err
	}

	for _, id := range nodes[1 : len(nodes)-1] {
		if id == s.start {
			return nil, RejectRevisitsStart, nil
		}
	}

	length, err := s.measure(nodes)
	if errors.Is(err, domain.ErrEdgeNotFound) {
		return nil, RejectMissingEdge, nil
	}
	if err != nil {
		return nil, 0, err
	}

	if length < s.minMeters || length > s.maxMeters {
		return nil, RejectOutOfTolerance, nil
	}

	return &domain.Loop{
		Start:            s.start,
		Waypoints:        [2]domain.NodeID{b, c},
		Nodes:            nodes,
		LengthMeters:     length,
		LegsLengthMeters: legsLength,
	}, 0, nil
}

func (s *loopSearch) sampleNode() (domain.NodeID, error) {
	p, err := SamplePointInDisk(s.rng, s.startPoint, s.radiusKm)
	if err != nil {
		return 0, err
	}
	id, _, err := s.network.NearestNode(p)
	if err != nil {
		return 0, fmt.Errorf("nearest node to %v: %w", p, err)
	}
	return id, nil
}

// measure sums edge lengths along consecutive nodes.
func (s *loopSearch) measure(nodes []domain.NodeID) (float64, error) {
	var total float64
	for i := 1; i < len(nodes); i++ {
		l, err := s.network.EdgeLength(nodes[i-1], nodes[i])
		if err != nil {
			return 0, err
		}
		total += l
	}
	return total, nil
}
