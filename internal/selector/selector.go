package selector

import (
	"errors"
	"fmt"

	"github.com/foxseedlab/lecturenote/internal/config"
)

var ErrNoTarget = errors.New("no target selected")

// Prompter asks the operator to pick one of several targets.
type Prompter interface {
	Choose(targets []config.Target) (config.Target, error)
}

type TargetSource interface {
	Targets() []config.Target
	Target(name string) (config.Target, error)
}

// Resolve picks the session target: an explicit name wins, a single
// configured target is used as is, otherwise the prompter decides.
func Resolve(src TargetSource, name string, prompter Prompter) (config.Target, error) {
	if name != "" {
		return src.Target(name)
	}
	targets := src.Targets()
	switch len(targets) {
	case 0:
		return config.Target{}, ErrNoTarget
	case 1:
		return targets[0], nil
	}
	if prompter == nil {
		return config.Target{}, fmt.Errorf("%w: %d targets configured, pass --target", ErrNoTarget, len(targets))
	}
	t, err := prompter.Choose(targets)
	if err != nil {
		return config.Target{}, fmt.Errorf("%w: %w", ErrNoTarget, err)
	}
	return t, nil
}
