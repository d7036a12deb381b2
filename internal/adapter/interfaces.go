package adapter

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter is the client's view of the go-pass-guard server API.
//
// Errors carry the service taxonomy (service.ErrValidation,
// service.ErrOwnerNotFound, ...) mapped back from the response status, so
// callers match them with errors.Is exactly as they would on the server.
type ServerAdapter interface {
	// SetToken sets the bearer token attached to authenticated requests.
	SetToken(token string)
	Token() string

	SignUpWithPassword(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error)
	LogInWithPassword(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)

	// FederatedStartURL is the address the browser has to open to begin a
	// federated sign-in. It does not contact the server.
	FederatedStartURL(provider models.Provider, mode, nonce, callback string) string

	// RedirectResult returns the finished sign-in stored under nonce, or nil
	// while there is none.
	RedirectResult(ctx context.Context, nonce string) (*models.AuthResponse, error)

	SignUpOwner(ctx context.Context, avatarURL string) (models.Owner, error)
	CurrentOwner(ctx context.Context) (models.Owner, error)

	ListEntries(ctx context.Context, query string) ([]models.CredentialEntry, error)
	AddEntry(ctx context.Context, in models.EntryInput) (models.CredentialEntry, error)
	GetEntry(ctx context.Context, entryID string) (models.CredentialEntry, error)
	UpdateEntry(ctx context.Context, entryID string, in models.EntryInput) (models.CredentialEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error

	Version(ctx context.Context) (string, error)
}
