package ports

import (
	"context"

	"github.com/justzen0/random-walker/internal/domain"
)

// Port: a boundary for storing and retrieving suggested walks.
type WalkRepository interface {
	// Store a walk and set its ID and CreatedAt.
	SaveWalk(ctx context.Context, walk *domain.Walk) error
	// Return the most recent walks, newest first.
	ListWalks(ctx context.Context, limit int) ([]*domain.Walk, error)
	// Return one walk or domain.ErrWalkNotFound.
	GetWalk(ctx context.Context, id int64) (*domain.Walk, error)
}
