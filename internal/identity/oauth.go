package identity

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"golang.org/x/oauth2"
)

// profileFetcher turns an authorized HTTP client into a principal.
type profileFetcher func(ctx context.Context, client *utils.HTTPClient) (models.Principal, error)

// oauthProvider runs the authorization code flow shared by Google and GitHub.
type oauthProvider struct {
	name   models.Provider
	config *oauth2.Config
	fetch  profileFetcher
	logger *logger.Logger
}

func newOAuthProvider(name models.Provider, cfg config.OAuthProvider, endpoint oauth2.Endpoint, scopes []string, fetch profileFetcher, logger *logger.Logger) *oauthProvider {
	return &oauthProvider{
		name: name,
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Endpoint:     endpoint,
			Scopes:       scopes,
		},
		fetch:  fetch,
		logger: logger,
	}
}

func (p *oauthProvider) Name() models.Provider {
	return p.name
}

func (p *oauthProvider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

// Authenticate exchanges creds.Code for an access token and reads the
// profile with it. A profile without an email is returned as is; the caller
// decides whether it can be reconciled.
func (p *oauthProvider) Authenticate(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	log := logger.FromContext(ctx)

	token, err := p.config.Exchange(ctx, creds.Code)
	if err != nil {
		log.Err(err).Str("provider", string(p.name)).Msg("code exchange failed")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrCodeExchange, err)
	}

	client := utils.NewHTTPClientFrom(p.config.Client(ctx, token))
	principal, err := p.fetch(ctx, client)
	if err != nil {
		log.Err(err).Str("provider", string(p.name)).Msg("profile fetch failed")
		return models.Principal{}, fmt.Errorf("%w: %w", ErrFetchProfile, err)
	}
	principal.Provider = p.name

	return principal, nil
}
