package main

import (
	"bytes"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})
	return &buf
}

func TestExecute_MissingTitleIsUsageError(t *testing.T) {
	out := captureOutput(t)
	if code := execute([]string{}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
	if !strings.Contains(out.String(), "accepts 1 arg(s), received 0") {
		t.Fatalf("expected argument error, got %q", out.String())
	}
	if !strings.Contains(out.String(), "lecturenote TITLE") {
		t.Fatalf("expected usage to be printed, got %q", out.String())
	}
}

func TestExecute_TooManyArgs(t *testing.T) {
	captureOutput(t)
	if code := execute([]string{"Lecture 1", "extra"}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
}

func TestExecute_BlankTitleFailsBeforeConfig(t *testing.T) {
	out := captureOutput(t)
	if code := execute([]string{"   "}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
	if !strings.Contains(out.String(), "TITLE must not be blank") {
		t.Fatalf("expected blank title error, got %q", out.String())
	}
}

func TestExecute_UnknownFlag(t *testing.T) {
	captureOutput(t)
	if code := execute([]string{"--no-such-flag", "Lecture 1"}); code != 1 {
		t.Fatalf("expected exit status 1, got %d", code)
	}
}
