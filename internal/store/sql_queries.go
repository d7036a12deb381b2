package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-pass-guard/models"
)

const (
	ownersTable  = "owners"
	entriesTable = "entries"
)

var (
	ownerColumns = []string{"owner_id", "login_key", "principal_id", "secret", "avatar_url", "created_at"}
	entryColumns = []string{"entry_id", "owner_id", "website", "username", "password", "created_at", "updated_at"}
)

func buildInsertOwnerQuery(b sq.StatementBuilderType, owner models.Owner) (string, []any, error) {
	return b.Insert(ownersTable).
		Columns(ownerColumns...).
		Values(owner.OwnerID, owner.LoginKey, owner.PrincipalID, owner.Secret, owner.AvatarURL, owner.CreatedAt).
		ToSql()
}

// buildSelectOwnerQuery selects one owner by an arbitrary unique column.
func buildSelectOwnerQuery(b sq.StatementBuilderType, column, value string) (string, []any, error) {
	return b.Select(ownerColumns...).
		From(ownersTable).
		Where(sq.Eq{column: value}).
		Limit(1).
		ToSql()
}

func buildInsertEntryQuery(b sq.StatementBuilderType, entry models.CredentialEntry) (string, []any, error) {
	return b.Insert(entriesTable).
		Columns(entryColumns...).
		Values(entry.EntryID, entry.OwnerID, entry.Website, entry.Username, entry.Password, entry.CreatedAt, entry.UpdatedAt).
		ToSql()
}

// buildSelectEntriesQuery lists an owner's entries oldest first.
func buildSelectEntriesQuery(b sq.StatementBuilderType, ownerID string) (string, []any, error) {
	return b.Select(entryColumns...).
		From(entriesTable).
		Where(sq.Eq{"owner_id": ownerID}).
		OrderBy("created_at ASC", "entry_id ASC").
		ToSql()
}

func buildSelectEntryQuery(b sq.StatementBuilderType, ownerID, entryID string) (string, []any, error) {
	return b.Select(entryColumns...).
		From(entriesTable).
		Where(sq.Eq{"owner_id": ownerID, "entry_id": entryID}).
		ToSql()
}

// buildUpdateEntryQuery rewrites the mutable fields. created_at is never
// touched.
func buildUpdateEntryQuery(b sq.StatementBuilderType, entry models.CredentialEntry, now time.Time) (string, []any, error) {
	return b.Update(entriesTable).
		Set("website", entry.Website).
		Set("username", entry.Username).
		Set("password", entry.Password).
		Set("updated_at", now).
		Where(sq.Eq{"owner_id": entry.OwnerID, "entry_id": entry.EntryID}).
		ToSql()
}

func buildDeleteEntryQuery(b sq.StatementBuilderType, ownerID, entryID string) (string, []any, error) {
	return b.Delete(entriesTable).
		Where(sq.Eq{"owner_id": ownerID, "entry_id": entryID}).
		ToSql()
}
