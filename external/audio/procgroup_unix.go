//go:build unix && !portaudio

package audio

import (
	"os/exec"
	"syscall"
)

// detachProcessGroup keeps terminal signals away from the recorder so only Stop ends it.
func detachProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
