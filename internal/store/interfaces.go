package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

// OwnerRepository persists owner records. Implementations enforce LoginKey
// uniqueness and report a collision as [ErrLoginKeyTaken].
type OwnerRepository interface {
	CreateOwner(ctx context.Context, owner models.Owner) (models.Owner, error)
	FindOwnerByLoginKey(ctx context.Context, loginKey string) (models.Owner, error)
	FindOwnerByPrincipalID(ctx context.Context, principalID string) (models.Owner, error)
	GetOwner(ctx context.Context, ownerID string) (models.Owner, error)
}

// EntryRepository persists credential entries, always scoped to one owner.
// An entry that exists under another owner is reported as [ErrEntryNotFound].
type EntryRepository interface {
	CreateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error)
	ListEntries(ctx context.Context, ownerID string) ([]models.CredentialEntry, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error)
	UpdateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error)
	DeleteEntry(ctx context.Context, ownerID, entryID string) error
}

// SessionStore keeps the client's principal token between runs.
type SessionStore interface {
	Load() (LocalSession, error)
	Save(session LocalSession) error
	Clear() error
}

// IDGenerator issues store-assigned identifiers.
type IDGenerator interface {
	Generate() string
}
