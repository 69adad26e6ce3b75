package google

import (
	"cloud.google.com/go/auth"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*auth.Credentials, error) {
		return LoadCredentials(do.MustInvoke[*config.Config](i))
	})
}
