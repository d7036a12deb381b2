package identity

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"golang.org/x/oauth2/github"
)

const githubAPIURL = "https://api.github.com"

type githubProfile struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// NewGitHubProvider builds the GitHub OAuth2 provider.
func NewGitHubProvider(cfg config.OAuthProvider, logger *logger.Logger) FederatedProvider {
	return newOAuthProvider(models.ProviderGitHub, cfg, github.Endpoint,
		[]string{"read:user", "user:email"}, fetchGitHubProfile(githubAPIURL), logger)
}

// fetchGitHubProfile reads /user and, when the public email is hidden, the
// primary verified address from /user/emails.
func fetchGitHubProfile(apiURL string) profileFetcher {
	return func(ctx context.Context, client *utils.HTTPClient) (models.Principal, error) {
		var profile githubProfile
		resp, err := client.R().
			SetContext(ctx).
			SetHeader("Accept", "application/vnd.github+json").
			SetResult(&profile).
			Get(apiURL + "/user")
		if err != nil {
			return models.Principal{}, err
		}
		if resp.IsError() {
			return models.Principal{}, fmt.Errorf("github /user returned %d", resp.StatusCode())
		}

		email := profile.Email
		if email == "" {
			var emails []githubEmail
			resp, err = client.R().
				SetContext(ctx).
				SetHeader("Accept", "application/vnd.github+json").
				SetResult(&emails).
				Get(apiURL + "/user/emails")
			if err == nil && !resp.IsError() {
				email = primaryEmail(emails)
			}
		}

		name := profile.Name
		if name == "" {
			name = profile.Login
		}

		return models.Principal{
			UID:         strconv.FormatInt(profile.ID, 10),
			Email:       email,
			DisplayName: name,
			AvatarURL:   profile.AvatarURL,
		}, nil
	}
}

func primaryEmail(emails []githubEmail) string {
	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email
		}
	}
	return ""
}
