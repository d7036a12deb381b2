package identity

import (
	"strings"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

// NewProviders builds the password provider and every federated provider
// that has a client id configured.
func NewProviders(cfg *config.StructuredConfig, verifier SecretVerifier, logger *logger.Logger) []Provider {
	providers := []Provider{NewPasswordProvider(verifier)}

	if google := cfg.Providers.Google; google.Enabled() {
		google.CallbackURL = callbackURL(google, cfg.Server.PublicURL, models.ProviderGoogle)
		providers = append(providers, NewGoogleProvider(google, logger))
	}
	if github := cfg.Providers.GitHub; github.Enabled() {
		github.CallbackURL = callbackURL(github, cfg.Server.PublicURL, models.ProviderGitHub)
		providers = append(providers, NewGitHubProvider(github, logger))
	}

	logger.Debug().Int("count", len(providers)).Msg("identity providers configured")
	return providers
}

func callbackURL(p config.OAuthProvider, publicURL string, name models.Provider) string {
	if p.CallbackURL != "" {
		return p.CallbackURL
	}
	return strings.TrimRight(publicURL, "/") + "/api/auth/" + string(name) + "/callback"
}
