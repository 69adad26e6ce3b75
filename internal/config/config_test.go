package config

import (
	"errors"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:                        "development",
		GoogleCloudProjectID:       "project-id",
		GoogleCloudCredentialsFile: "service-key.json",
		GoogleCloudSpeechLocation:  "global",
		GoogleCloudSpeechModel:     "long",
		TranscribeLanguage:         "en-US",
		AudioSampleRate:            16000,
		AudioFrameMs:               100,
		AudioBufferFrames:          600,
		OpenAIAPIKey:               "sk-test",
		OpenAIModel:                "gpt-4o-mini",
		SummaryBoldOffset:          1,
		SummaryBoldLength:          11,
		TranscriptDocs:             map[string]string{"CISC 474": "doc-b", "CISC 455": "doc-a"},
		SummaryDocs:                map[string]string{"CISC 474": "sum-b", "CISC 455": "sum-a"},
	}
}

func TestValidate_Valid(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error when required fields are missing")
	}
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestValidate_MissingCredentials(t *testing.T) {
	cfg := validConfig()
	cfg.GoogleCloudCredentialsFile = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without any credentials source")
	}
	cfg.GoogleCloudCredentialsJSON = `{"type":"service_account"}`
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected inline credentials to satisfy validation, got %v", err)
	}
}

func TestValidate_FrameDurationMustDivideSecond(t *testing.T) {
	cfg := validConfig()
	cfg.AudioFrameMs = 30
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for frame duration not dividing one second")
	}
}

func TestValidate_TargetWithoutSummaryDoc(t *testing.T) {
	cfg := validConfig()
	delete(cfg.SummaryDocs, "CISC 474")
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for target without summary document")
	}
}

func TestValidate_SummaryDocWithoutTarget(t *testing.T) {
	cfg := validConfig()
	cfg.SummaryDocs["CLST 201"] = "sum-c"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for summary document without transcript target")
	}
}

func TestValidate_DiscordRequiresBothFields(t *testing.T) {
	cfg := validConfig()
	cfg.DiscordToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error when only DISCORD_TOKEN is set")
	}
	cfg.DiscordChannelID = "channel"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestTargets_SortedByName(t *testing.T) {
	targets := validConfig().Targets()
	if len(targets) != 2 {
		t.Fatalf("expected 2 targets, got %d", len(targets))
	}
	if targets[0].Name != "CISC 455" || targets[0].TranscriptDocID != "doc-a" || targets[0].SummaryDocID != "sum-a" {
		t.Fatalf("unexpected first target: %+v", targets[0])
	}
	if targets[1].Name != "CISC 474" {
		t.Fatalf("unexpected second target: %+v", targets[1])
	}
}

func TestTarget_Unknown(t *testing.T) {
	_, err := validConfig().Target("MATH 101")
	if !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestIsDevelopment(t *testing.T) {
	cfg := &Config{Env: "development"}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development mode")
	}
	cfg.Env = "production"
	if cfg.IsDevelopment() {
		t.Fatal("expected non-development mode")
	}
}

func TestFrameDuration(t *testing.T) {
	cfg := validConfig()
	if got := cfg.FrameDuration(); got != 100*time.Millisecond {
		t.Fatalf("expected 100ms, got %v", got)
	}
}
