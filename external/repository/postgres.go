package repository

import (
	"context"
	"fmt"

	"github.com/foxseedlab/lecturenote/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// One session writes sequentially, so a tiny pool is enough.
const maxPoolConns = 2

// OpenPool connects, pings and migrates. The pool is closed on any failure.
func OpenPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	poolCfg.MaxConns = maxPoolConns
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "lecturenote"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if err := RunMigration(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migration: %w", err)
	}
	return pool, nil
}

type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) repository.Repository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) CreateSession(ctx context.Context, input repository.CreateSessionInput) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lecture_sessions (id, title, target_name, transcript_doc_id, summary_doc_id, started_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		createSessionArgs(input)...)
	return err
}

func createSessionArgs(input repository.CreateSessionInput) []any {
	return []any{
		input.ID, input.Title, input.TargetName, input.TranscriptDocID, input.SummaryDocID, input.StartedAt,
		string(repository.SessionStatusRunning),
	}
}

func (r *PostgresRepository) CompleteSession(ctx context.Context, input repository.CompleteSessionInput) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE lecture_sessions
		 SET status = $2, ended_at = $3, summary = NULLIF($4, ''), segment_count = $5
		 WHERE id = $1`,
		input.SessionID, string(input.Status), input.EndedAt, input.Summary, input.SegmentCount)
	return err
}

func (r *PostgresRepository) InsertSegment(ctx context.Context, input repository.InsertSegmentInput) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO lecture_segments (session_id, segment_index, content, finalized_at)
		 VALUES ($1, $2, $3, $4)`,
		input.SessionID, input.SegmentIndex, input.Content, input.FinalizedAt)
	return err
}

// Shutdown closes the pool when the injector shuts down.
func (r *PostgresRepository) Shutdown() {
	r.pool.Close()
}
