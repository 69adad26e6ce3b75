//go:build !unix && !portaudio

package audio

import "os/exec"

func detachProcessGroup(*exec.Cmd) {}
