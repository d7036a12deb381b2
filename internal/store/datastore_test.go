package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatastoreKeys(t *testing.T) {
	keys := datastoreKeys{namespace: "tenant"}

	key := keys.entryKey("owner-1", "entry-1")
	assert.Equal(t, kindEntry, key.Kind)
	assert.Equal(t, "entry-1", key.Name)
	assert.Equal(t, "tenant", key.Namespace)
	require.NotNil(t, key.Parent)
	assert.Equal(t, kindOwnerScope, key.Parent.Kind)
	assert.Equal(t, "owner-1", key.Parent.Name)

	assert.False(t, keys.entryKey("owner-2", "entry-1").Equal(key))
}

func TestEntryEntity_ToEntry(t *testing.T) {
	keys := datastoreKeys{}
	entity := entryToEntity(models.CredentialEntry{
		Website:   "a.com",
		Username:  "ann",
		Password:  "pw",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}, keys.entryKey("owner-1", "entry-1"))

	assert.Equal(t, models.CredentialEntry{
		EntryID:   "entry-1",
		OwnerID:   "owner-1",
		Website:   "a.com",
		Username:  "ann",
		Password:  "pw",
		CreatedAt: testNow,
		UpdatedAt: testNow,
	}, entity.toEntry())
}

func TestOwnerEntity_LoginKeyFromKey(t *testing.T) {
	key := datastoreKeys{}.ownerKey("ann@example.com")
	owner := ownerToEntity(models.Owner{OwnerID: "o1", Secret: "h"}, key).toOwner()

	assert.Equal(t, "ann@example.com", owner.LoginKey)
	assert.Equal(t, "o1", owner.OwnerID)
}

// Runs against the Datastore emulator only.
func TestDatastoreRepositories_Emulator(t *testing.T) {
	if os.Getenv("DATASTORE_EMULATOR_HOST") == "" {
		t.Skip("DATASTORE_EMULATOR_HOST is not set")
	}

	ctx := context.Background()
	log := logger.Nop()
	client, err := NewDatastoreClient(ctx, config.Datastore{ProjectID: "go-pass-guard-test"}, log)
	require.NoError(t, err)
	defer client.Close()

	ns := "test-" + testNow.Format("20060102150405")
	ids := &seqIDs{}
	owners := NewDatastoreOwnerRepository(client, ns, ids, log)
	entries := NewDatastoreEntryRepository(client, ns, ids, log)

	owner, err := owners.CreateOwner(ctx, models.Owner{LoginKey: "ann@example.com"})
	require.NoError(t, err)
	_, err = owners.CreateOwner(ctx, models.Owner{LoginKey: "ann@example.com"})
	require.ErrorIs(t, err, ErrLoginKeyTaken)

	entry, err := entries.CreateEntry(ctx, models.CredentialEntry{OwnerID: owner.OwnerID, Website: "a.com", Username: "ann", Password: "pw"})
	require.NoError(t, err)

	_, err = entries.GetEntry(ctx, "someone-else", entry.EntryID)
	require.ErrorIs(t, err, ErrEntryNotFound)

	require.NoError(t, entries.DeleteEntry(ctx, owner.OwnerID, entry.EntryID))
	require.ErrorIs(t, entries.DeleteEntry(ctx, owner.OwnerID, entry.EntryID), ErrEntryNotFound)

	_ = client.Delete(ctx, datastoreKeys{namespace: ns}.ownerKey("ann@example.com"))
}


func TestSortEntries(t *testing.T) {
	later := testNow.Add(time.Minute)
	entries := []models.CredentialEntry{
		{EntryID: "c", CreatedAt: later},
		{EntryID: "b", CreatedAt: testNow},
		{EntryID: "a", CreatedAt: testNow},
	}

	sortEntries(entries)

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.EntryID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
