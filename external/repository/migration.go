package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var migrationStatements = []string{
	`DO $$ BEGIN CREATE TYPE lecture_session_status AS ENUM ('running', 'completed', 'aborted'); EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`CREATE TABLE IF NOT EXISTS lecture_sessions (
		id UUID PRIMARY KEY,
		title TEXT NOT NULL,
		target_name TEXT NOT NULL,
		transcript_doc_id TEXT NOT NULL,
		summary_doc_id TEXT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		ended_at TIMESTAMPTZ,
		status lecture_session_status NOT NULL DEFAULT 'running',
		summary TEXT,
		segment_count INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS lecture_segments (
		session_id UUID NOT NULL REFERENCES lecture_sessions(id) ON DELETE CASCADE,
		segment_index INTEGER NOT NULL,
		content TEXT NOT NULL,
		finalized_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (session_id, segment_index)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_lecture_sessions_target ON lecture_sessions (target_name, started_at DESC)`,
}

// RunMigration applies the schema in one transaction so a partial schema is never left behind.
func RunMigration(ctx context.Context, pool *pgxpool.Pool) error {
	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		for i, s := range migrationStatements {
			if _, err := tx.Exec(ctx, strings.TrimSpace(s)); err != nil {
				return fmt.Errorf("migration statement %d: %w", i+1, err)
			}
		}
		return nil
	})
}
