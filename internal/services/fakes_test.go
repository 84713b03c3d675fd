package services

import (
	"context"

	"github.com/justzen0/random-walker/internal/domain"
)

// fakeNetwork is a ports.RoadNetwork whose behavior is set per test.
// Nil funcs fall back to a three-node triangle 1-2-3 with 1000 m edges.
type fakeNetwork struct {
	nearestFn func(p domain.GeoPoint) (domain.NodeID, float64, error)
	coordFn   func(id domain.NodeID) (domain.GeoPoint, error)
	pathFn    func(source, target domain.NodeID) (domain.PathLeg, error)
	edgeFn    func(u, v domain.NodeID) (float64, error)

	nearestCalls int
}

func (f *fakeNetwork) NearestNode(p domain.GeoPoint) (domain.NodeID, float64, error) {
	f.nearestCalls++
	if f.nearestFn != nil {
		return f.nearestFn(p)
	}
	// alternate between the two non-start nodes
	if f.nearestCalls%2 == 1 {
		return 2, 0, nil
	}
	return 3, 0, nil
}

func (f *fakeNetwork) NodeCoordinate(id domain.NodeID) (domain.GeoPoint, error) {
	if f.coordFn != nil {
		return f.coordFn(id)
	}
	if id < 1 || id > 3 {
		return domain.GeoPoint{}, domain.ErrNodeNotFound
	}
	return domain.GeoPoint{Lat: 22.5726, Lon: 88.3639 + float64(id)*0.001}, nil
}

func (f *fakeNetwork) ShortestPath(source, target domain.NodeID) (domain.PathLeg, error) {
	if f.pathFn != nil {
		return f.pathFn(source, target)
	}
	return domain.PathLeg{Nodes: []domain.NodeID{source, target}, LengthMeters: 1000}, nil
}

func (f *fakeNetwork) EdgeLength(u, v domain.NodeID) (float64, error) {
	if f.edgeFn != nil {
		return f.edgeFn(u, v)
	}
	return 1000, nil
}

// constRand returns the same draw forever.
type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

// memWalkRepo keeps walks in memory.
type memWalkRepo struct {
	walks   []*domain.Walk
	saveErr error
}

func (m *memWalkRepo) SaveWalk(_ context.Context, w *domain.Walk) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	w.ID = int64(len(m.walks) + 1)
	m.walks = append(m.walks, w)
	return nil
}

func (m *memWalkRepo) ListWalks(_ context.Context, limit int) ([]*domain.Walk, error) {
	out := make([]*domain.Walk, 0, limit)
	for i := len(m.walks) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.walks[i])
	}
	return out, nil
}

func (m *memWalkRepo) GetWalk(_ context.Context, id int64) (*domain.Walk, error) {
	if id < 1 || int(id) > len(m.walks) {
		return nil, domain.ErrWalkNotFound
	}
	return m.walks[id-1], nil
}
