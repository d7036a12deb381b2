package identity

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

// PasswordProvider authenticates a login key and secret against the stored
// owner hash. The resulting principal uses the login key as its email, so
// it reconciles through the same path as federated principals.
type PasswordProvider struct {
	verifier SecretVerifier
}

func NewPasswordProvider(verifier SecretVerifier) *PasswordProvider {
	return &PasswordProvider{verifier: verifier}
}

func (p *PasswordProvider) Name() models.Provider {
	return models.ProviderPassword
}

func (p *PasswordProvider) Authenticate(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	owner, err := p.verifier.VerifySecret(ctx, creds)
	if err != nil {
		return models.Principal{}, err
	}

	return PrincipalFromOwner(owner), nil
}

// PrincipalFromOwner builds the password principal of an owner.
func PrincipalFromOwner(owner models.Owner) models.Principal {
	return models.Principal{
		UID:       owner.PrincipalID,
		Email:     owner.LoginKey,
		AvatarURL: owner.AvatarURL,
		Provider:  models.ProviderPassword,
	}
}
