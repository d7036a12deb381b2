package models

// Provider names an identity origin.
type Provider string

const (
	ProviderPassword Provider = "password"
	ProviderGoogle   Provider = "google"
	ProviderGitHub   Provider = "github"
)

// IsFederated reports whether p delegates authentication to a third party.
func (p Provider) IsFederated() bool {
	return p == ProviderGoogle || p == ProviderGitHub
}

// Principal is the authenticated identity returned by an identity provider.
type Principal struct {
	UID         string   `json:"uid"`
	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Provider    Provider `json:"provider"`
}

// Credentials is the input accepted by identity providers.
// Password providers read LoginKey and Secret, federated providers read Code.
type Credentials struct {
	LoginKey string `json:"login_key,omitempty"`
	Secret   string `json:"secret,omitempty"`
	Code     string `json:"-"`
}

// AuthResponse is returned by every successful authentication endpoint.
type AuthResponse struct {
	Token     string    `json:"token"`
	Principal Principal `json:"principal"`
}
