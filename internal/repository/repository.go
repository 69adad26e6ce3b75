package repository

import (
	"context"
	"time"
)

type CreateSessionInput struct {
	ID              string
	Title           string
	TargetName      string
	TranscriptDocID string
	SummaryDocID    string
	StartedAt       time.Time
}

type CompleteSessionInput struct {
	SessionID    string
	Status       SessionStatus
	EndedAt      time.Time
	Summary      string
	SegmentCount int
}

type InsertSegmentInput struct {
	SessionID    string
	SegmentIndex int
	Content      string
	FinalizedAt  time.Time
}

type SessionRepository interface {
	CreateSession(ctx context.Context, input CreateSessionInput) error
	CompleteSession(ctx context.Context, input CompleteSessionInput) error
}

type TranscriptRepository interface {
	InsertSegment(ctx context.Context, input InsertSegmentInput) error
}

// Repository archives sessions. It is optional; a no-op implementation is used when unconfigured.
type Repository interface {
	SessionRepository
	TranscriptRepository
}
