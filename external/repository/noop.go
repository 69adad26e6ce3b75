package repository

import (
	"context"

	"github.com/foxseedlab/lecturenote/internal/repository"
)

type noopRepository struct{}

func NewNoopRepository() repository.Repository {
	return noopRepository{}
}

func (noopRepository) CreateSession(context.Context, repository.CreateSessionInput) error {
	return nil
}

func (noopRepository) CompleteSession(context.Context, repository.CompleteSessionInput) error {
	return nil
}

func (noopRepository) InsertSegment(context.Context, repository.InsertSegmentInput) error {
	return nil
}
