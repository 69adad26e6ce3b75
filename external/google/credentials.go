package google

import (
	"fmt"

	"cloud.google.com/go/auth"
	"cloud.google.com/go/auth/credentials"
	"github.com/foxseedlab/lecturenote/internal/config"
)

var scopes = []string{
	"https://www.googleapis.com/auth/cloud-platform",
	"https://www.googleapis.com/auth/documents",
}

// LoadCredentials prefers inline JSON over the credentials file.
func LoadCredentials(cfg *config.Config) (*auth.Credentials, error) {
	opts := &credentials.DetectOptions{Scopes: scopes}
	if cfg.GoogleCloudCredentialsJSON != "" {
		opts.CredentialsJSON = []byte(cfg.GoogleCloudCredentialsJSON)
	} else {
		opts.CredentialsFile = cfg.GoogleCloudCredentialsFile
	}
	creds, err := credentials.DetectDefault(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: detect google credentials: %w", config.ErrConfiguration, err)
	}
	return creds, nil
}
