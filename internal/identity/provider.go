package identity

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

// Provider authenticates one kind of credentials into a principal.
type Provider interface {
	Name() models.Provider
	Authenticate(ctx context.Context, creds models.Credentials) (models.Principal, error)
}

// FederatedProvider is a Provider that delegates consent to a third party.
type FederatedProvider interface {
	Provider
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string
}

// SecretVerifier checks a password login against the owner records.
type SecretVerifier interface {
	VerifySecret(ctx context.Context, creds models.Credentials) (models.Owner, error)
}
