package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/foxseedlab/lecturenote/internal/repository"
)

func TestCreateSessionArgs_StartsRunning(t *testing.T) {
	startedAt := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	args := createSessionArgs(repository.CreateSessionInput{
		ID:              "s-1",
		Title:           "Lecture 1",
		TargetName:      "CLST 201",
		TranscriptDocID: "doc-t",
		SummaryDocID:    "doc-s",
		StartedAt:       startedAt,
	})
	if len(args) != 7 {
		t.Fatalf("expected 7 query args, got %d", len(args))
	}
	if args[0] != "s-1" || args[5] != startedAt {
		t.Fatalf("unexpected leading args: %v", args)
	}
	if args[6] != string(repository.SessionStatusRunning) {
		t.Fatalf("expected running status, got %v", args[6])
	}
}

func TestMigration_StatusEnumCoversEveryStatus(t *testing.T) {
	enum := migrationStatements[0]
	for _, s := range []repository.SessionStatus{
		repository.SessionStatusRunning,
		repository.SessionStatusCompleted,
		repository.SessionStatusAborted,
	} {
		if !strings.Contains(enum, "'"+string(s)+"'") {
			t.Fatalf("status %q missing from enum: %s", s, enum)
		}
	}
}
