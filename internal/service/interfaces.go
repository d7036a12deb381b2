package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

// IdentityService maps principals to owner records.
type IdentityService interface {
	// SignUp creates an owner unless one with the same login key exists.
	SignUp(ctx context.Context, req models.SignUpRequest) (models.Owner, error)
	// SignUpPrincipal signs up a federated principal. Its email becomes the
	// login key.
	SignUpPrincipal(ctx context.Context, principal models.Principal) (models.Owner, error)
	// LogIn is a pure lookup by login key.
	LogIn(ctx context.Context, loginKey string) (models.Owner, error)
	LogInByPrincipal(ctx context.Context, principalID string) (models.Owner, error)
	// Reconcile resolves the owner of an authenticated principal by email.
	Reconcile(ctx context.Context, principal models.Principal) (models.Owner, error)
	// VerifySecret checks a password login against the stored hash.
	VerifySecret(ctx context.Context, creds models.Credentials) (models.Owner, error)
}

// CredentialService is the owner-scoped credential repository.
type CredentialService interface {
	ResolveOwner(ctx context.Context, principal models.Principal) (string, error)
	Add(ctx context.Context, ownerID string, in models.EntryInput) (models.CredentialEntry, error)
	List(ctx context.Context, ownerID string) ([]models.CredentialEntry, error)
	Get(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error)
	Update(ctx context.Context, ownerID, entryID string, in models.EntryInput) (models.CredentialEntry, error)
	Delete(ctx context.Context, ownerID, entryID string) error
}

// CredentialServiceWrapper defines middleware composition for
// CredentialService.
type CredentialServiceWrapper interface {
	Wrap(CredentialService) CredentialService
}

// LegacyService serves the unauthenticated flat credential collection.
type LegacyService interface {
	Add(ctx context.Context, in models.EntryInput) (models.CredentialEntry, error)
	List(ctx context.Context) ([]models.CredentialEntry, error)
	Get(ctx context.Context, entryID string) (models.CredentialEntry, error)
	Update(ctx context.Context, entryID string, in models.EntryInput) (models.CredentialEntry, error)
	Delete(ctx context.Context, entryID string) error
}

type AuthService interface {
	CreateToken(ctx context.Context, principal models.Principal) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
