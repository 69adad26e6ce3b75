//go:build unix && !portaudio

package audio

import (
	"context"
	"syscall"
	"testing"
)

func TestExecSource_RecorderRunsInOwnProcessGroup(t *testing.T) {
	requireCommand(t, "cat")
	src := &ExecSource{cfg: SourceConfig{Command: "cat /dev/zero", BufferFrames: 4}}

	frames, err := src.Start(context.Background(), testFormat)
	if err != nil {
		t.Fatalf("unexpected start error: %v", err)
	}
	pid := src.cmd.Process.Pid
	pgid, err := syscall.Getpgid(pid)
	if err != nil {
		t.Fatalf("getpgid: %v", err)
	}
	if pgid != pid || pgid == syscall.Getpgrp() {
		t.Fatalf("expected recorder to lead its own group, pid=%d pgid=%d ours=%d", pid, pgid, syscall.Getpgrp())
	}
	if err := src.Stop(); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	drain(t, frames)
}
