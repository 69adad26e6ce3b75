package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	internalconfig "github.com/foxseedlab/lecturenote/internal/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLOUD_PROJECT_ID", "project-id")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("TRANSCRIPT_DOCS", "CLST 201=doc-1, CISC 455 =doc-2")
	t.Setenv("SUMMARY_DOCS", "CLST 201=sum-1,CISC 455=sum-2")
}

func missingDotEnv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_DefaultsAndTargets(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load(missingDotEnv(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AudioSampleRate != 16000 || cfg.AudioFrameMs != 100 {
		t.Fatalf("unexpected audio defaults: %d Hz, %d ms", cfg.AudioSampleRate, cfg.AudioFrameMs)
	}
	if cfg.TranscribeLanguage != "en-US" {
		t.Fatalf("unexpected language: %s", cfg.TranscribeLanguage)
	}
	if cfg.SinkRetryWindow != 10*time.Second {
		t.Fatalf("unexpected sink retry window: %v", cfg.SinkRetryWindow)
	}
	if cfg.SummaryPrompt != defaultSummaryPrompt {
		t.Fatal("expected default summary prompt")
	}
	target, err := cfg.Target("CISC 455")
	if err != nil {
		t.Fatalf("expected trimmed target name, got %v", err)
	}
	if target.TranscriptDocID != "doc-2" || target.SummaryDocID != "sum-2" {
		t.Fatalf("unexpected target: %+v", target)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_API_KEY", "")
	os.Unsetenv("OPENAI_API_KEY")

	_, err := Load(missingDotEnv(t))
	if err == nil {
		t.Fatal("expected error for missing OPENAI_API_KEY")
	}
	if !errors.Is(err, internalconfig.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoad_MismatchedTargets(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUMMARY_DOCS", "CLST 201=sum-1")

	if _, err := Load(missingDotEnv(t)); !errors.Is(err, internalconfig.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestLoad_ReadsDotEnvFile(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("OPENAI_MODEL", "")
	os.Unsetenv("OPENAI_MODEL")
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("OPENAI_MODEL=gpt-4o\n"), 0o600); err != nil {
		t.Fatalf("failed to write dotenv: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("OPENAI_MODEL") })

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OpenAIModel != "gpt-4o" {
		t.Fatalf("expected model from dotenv, got %q", cfg.OpenAIModel)
	}
}
