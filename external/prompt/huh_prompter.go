package prompt

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/selector"
)

type HuhPrompter struct{}

func NewHuhPrompter() selector.Prompter {
	return HuhPrompter{}
}

func (HuhPrompter) Choose(targets []config.Target) (config.Target, error) {
	options := make([]huh.Option[string], len(targets))
	for i, t := range targets {
		options[i] = huh.NewOption(t.Name, t.Name)
	}

	var selected string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Choose a class").
				Options(options...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return config.Target{}, fmt.Errorf("target prompt: %w", err)
	}
	for _, t := range targets {
		if t.Name == selected {
			return t, nil
		}
	}
	return config.Target{}, fmt.Errorf("target prompt returned unknown choice %q", selected)
}
