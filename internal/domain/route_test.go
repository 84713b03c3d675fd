package domain

import (
	"slices"
	"testing"
)

func TestJoinLegs(t *testing.T) {
	legs := []PathLeg{
		{Nodes: []NodeID{1, 2, 3}, LengthMeters: 200},
		{Nodes: []NodeID{3, 4}, LengthMeters: 100},
		{Nodes: []NodeID{4, 5, 1}, LengthMeters: 250},
	}

	got, err := JoinLegs(legs...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []NodeID{1, 2, 3, 4, 5, 1}
	if !slices.Equal(got, want) {
		t.Fatalf("nodes = %v, want %v", got, want)
	}
}

func TestJoinLegsRejectsGaps(t *testing.T) {
	_, err := JoinLegs(
		PathLeg{Nodes: []NodeID{1, 2}},
		PathLeg{Nodes: []NodeID{3, 1}},
	)
	if err == nil {
		t.Fatal("expected error for disconnected legs")
	}

	if _, err := JoinLegs(PathLeg{Nodes: []NodeID{1, 2}}, PathLeg{}); err == nil {
		t.Fatal("expected error for empty leg")
	}
}
