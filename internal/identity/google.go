package identity

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

type googleProfile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NewGoogleProvider builds the Google OAuth2 provider.
func NewGoogleProvider(cfg config.OAuthProvider, logger *logger.Logger) FederatedProvider {
	return newOAuthProvider(models.ProviderGoogle, cfg, google.Endpoint, []string{
		"https://www.googleapis.com/auth/userinfo.email",
		"https://www.googleapis.com/auth/userinfo.profile",
	}, fetchGoogleProfile(googleUserInfoURL), logger)
}

func fetchGoogleProfile(userInfoURL string) profileFetcher {
	return func(ctx context.Context, client *utils.HTTPClient) (models.Principal, error) {
		var profile googleProfile
		resp, err := client.R().
			SetContext(ctx).
			SetResult(&profile).
			Get(userInfoURL)
		if err != nil {
			return models.Principal{}, err
		}
		if resp.IsError() {
			return models.Principal{}, fmt.Errorf("userinfo returned %d", resp.StatusCode())
		}

		email := profile.Email
		if !profile.VerifiedEmail {
			email = ""
		}

		return models.Principal{
			UID:         profile.ID,
			Email:       email,
			DisplayName: profile.Name,
			AvatarURL:   profile.Picture,
		}, nil
	}
}
