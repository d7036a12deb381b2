package store

import (
	"time"

	"cloud.google.com/go/datastore"
	"github.com/MKhiriev/go-pass-guard/models"
)

// Kind constants for Datastore entities.
const (
	kindOwner      = "Owner"
	kindOwnerScope = "OwnerScope"
	kindEntry      = "Entry"
)

// ownerEntity is keyed by the login key, which makes the key itself the
// uniqueness constraint.
type ownerEntity struct {
	Key         *datastore.Key `datastore:"__key__"`
	OwnerID     string         `datastore:"owner_id"`
	PrincipalID string         `datastore:"principal_id"`
	Secret      string         `datastore:"secret,noindex"`
	AvatarURL   string         `datastore:"avatar_url,noindex"`
	CreatedAt   time.Time      `datastore:"created_at"`
}

func (e *ownerEntity) toOwner() models.Owner {
	owner := models.Owner{
		OwnerID:     e.OwnerID,
		PrincipalID: e.PrincipalID,
		Secret:      e.Secret,
		AvatarURL:   e.AvatarURL,
		CreatedAt:   e.CreatedAt.UTC(),
	}
	if e.Key != nil {
		owner.LoginKey = e.Key.Name
	}
	return owner
}

func ownerToEntity(o models.Owner, key *datastore.Key) *ownerEntity {
	return &ownerEntity{
		Key:         key,
		OwnerID:     o.OwnerID,
		PrincipalID: o.PrincipalID,
		Secret:      o.Secret,
		AvatarURL:   o.AvatarURL,
		CreatedAt:   o.CreatedAt,
	}
}

// entryEntity lives under an OwnerScope ancestor named after the owner id.
type entryEntity struct {
	Key       *datastore.Key `datastore:"__key__"`
	Website   string         `datastore:"website"`
	Username  string         `datastore:"username"`
	Password  string         `datastore:"password,noindex"`
	CreatedAt time.Time      `datastore:"created_at"`
	UpdatedAt time.Time      `datastore:"updated_at"`
}

func (e *entryEntity) toEntry() models.CredentialEntry {
	entry := models.CredentialEntry{
		Website:   e.Website,
		Username:  e.Username,
		Password:  e.Password,
		CreatedAt: e.CreatedAt.UTC(),
		UpdatedAt: e.UpdatedAt.UTC(),
	}
	if e.Key != nil {
		entry.EntryID = e.Key.Name
		if e.Key.Parent != nil {
			entry.OwnerID = e.Key.Parent.Name
		}
	}
	return entry
}

func entryToEntity(c models.CredentialEntry, key *datastore.Key) *entryEntity {
	return &entryEntity{
		Key:       key,
		Website:   c.Website,
		Username:  c.Username,
		Password:  c.Password,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
