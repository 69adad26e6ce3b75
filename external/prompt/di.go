package prompt

import (
	"github.com/foxseedlab/lecturenote/internal/selector"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (selector.Prompter, error) {
		return NewHuhPrompter(), nil
	})
}
