package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// NewDatastoreClient connects to Cloud Datastore. When
// DATASTORE_EMULATOR_HOST is set the client library talks to the emulator.
func NewDatastoreClient(ctx context.Context, cfg config.Datastore, log *logger.Logger) (*datastore.Client, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := datastore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewDatastoreClient").Msg("error creating datastore client")
		return nil, fmt.Errorf("error creating datastore client: %w", err)
	}
	log.Info().Str("func", "NewDatastoreClient").Str("project", cfg.ProjectID).Msg("connected to datastore")

	return client, nil
}

type datastoreKeys struct {
	namespace string
}

func (k datastoreKeys) namespacedKey(kind, name string, parent *datastore.Key) *datastore.Key {
	key := datastore.NameKey(kind, name, parent)
	key.Namespace = k.namespace
	return key
}

func (k datastoreKeys) ownerKey(loginKey string) *datastore.Key {
	return k.namespacedKey(kindOwner, loginKey, nil)
}

func (k datastoreKeys) scopeKey(ownerID string) *datastore.Key {
	return k.namespacedKey(kindOwnerScope, ownerID, nil)
}

func (k datastoreKeys) entryKey(ownerID, entryID string) *datastore.Key {
	return k.namespacedKey(kindEntry, entryID, k.scopeKey(ownerID))
}

func (k datastoreKeys) query(kind string) *datastore.Query {
	query := datastore.NewQuery(kind)
	if k.namespace != "" {
		query = query.Namespace(k.namespace)
	}
	return query
}

// datastoreOwnerRepository implements [OwnerRepository] on Cloud Datastore.
// Owners are keyed by login key so that creation is a transactional
// get-then-put.
type datastoreOwnerRepository struct {
	client *datastore.Client
	keys   datastoreKeys
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewDatastoreOwnerRepository(client *datastore.Client, namespace string, ids IDGenerator, logger *logger.Logger) OwnerRepository {
	logger.Debug().Msg("creating datastore owner repository")
	return &datastoreOwnerRepository{
		client: client,
		keys:   datastoreKeys{namespace: namespace},
		ids:    ids,
		now:    utcNow,
		logger: logger,
	}
}

func (r *datastoreOwnerRepository) CreateOwner(ctx context.Context, owner models.Owner) (models.Owner, error) {
	log := logger.FromContext(ctx)

	owner.OwnerID = r.ids.Generate()
	owner.CreatedAt = r.now()
	key := r.keys.ownerKey(owner.LoginKey)

	_, err := r.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var existing ownerEntity
		err := tx.Get(key, &existing)
		if err == nil {
			return ErrLoginKeyTaken
		}
		if !errors.Is(err, datastore.ErrNoSuchEntity) {
			return err
		}
		_, err = tx.Put(key, ownerToEntity(owner, key))
		return err
	})
	if errors.Is(err, ErrLoginKeyTaken) {
		return models.Owner{}, ErrLoginKeyTaken
	}
	if err != nil {
		log.Err(err).Str("func", "*datastoreOwnerRepository.CreateOwner").Msg("error creating owner")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrRunningTransaction, err)
	}

	return owner, nil
}

func (r *datastoreOwnerRepository) FindOwnerByLoginKey(ctx context.Context, loginKey string) (models.Owner, error) {
	var entity ownerEntity
	err := r.client.Get(ctx, r.keys.ownerKey(loginKey), &entity)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return models.Owner{}, ErrOwnerNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreOwnerRepository.FindOwnerByLoginKey").Msg("error getting owner")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entity.toOwner(), nil
}

func (r *datastoreOwnerRepository) FindOwnerByPrincipalID(ctx context.Context, principalID string) (models.Owner, error) {
	return r.findOne(ctx, "principal_id", principalID)
}

func (r *datastoreOwnerRepository) GetOwner(ctx context.Context, ownerID string) (models.Owner, error) {
	return r.findOne(ctx, "owner_id", ownerID)
}

func (r *datastoreOwnerRepository) findOne(ctx context.Context, field, value string) (models.Owner, error) {
	query := r.keys.query(kindOwner).FilterField(field, "=", value).Limit(1)

	it := r.client.Run(ctx, query)
	var entity ownerEntity
	_, err := it.Next(&entity)
	if errors.Is(err, iterator.Done) {
		return models.Owner{}, ErrOwnerNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreOwnerRepository.findOne").Str("by", field).Msg("error querying owner")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entity.toOwner(), nil
}

// datastoreEntryRepository implements [EntryRepository] on Cloud Datastore.
// Entries are children of their owner's scope key, so a lookup under a
// different owner resolves to a different key and finds nothing.
type datastoreEntryRepository struct {
	client *datastore.Client
	keys   datastoreKeys
	ids    IDGenerator
	now    func() time.Time
	logger *logger.Logger
}

func NewDatastoreEntryRepository(client *datastore.Client, namespace string, ids IDGenerator, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating datastore entry repository")
	return &datastoreEntryRepository{
		client: client,
		keys:   datastoreKeys{namespace: namespace},
		ids:    ids,
		now:    utcNow,
		logger: logger,
	}
}

func (r *datastoreEntryRepository) CreateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	now := r.now()
	entry.EntryID = r.ids.Generate()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	key := r.keys.entryKey(entry.OwnerID, entry.EntryID)
	if _, err := r.client.Put(ctx, key, entryToEntity(entry, key)); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreEntryRepository.CreateEntry").Msg("error putting entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

func (r *datastoreEntryRepository) ListEntries(ctx context.Context, ownerID string) ([]models.CredentialEntry, error) {
	// Sorted after the fetch: ordering an ancestor query by a property
	// needs a composite index.
	query := r.keys.query(kindEntry).Ancestor(r.keys.scopeKey(ownerID))

	entries := make([]models.CredentialEntry, 0)
	it := r.client.Run(ctx, query)
	for {
		var entity entryEntity
		_, err := it.Next(&entity)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*datastoreEntryRepository.ListEntries").Msg("error iterating entries")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		entries = append(entries, entity.toEntry())
	}
	sortEntries(entries)

	return entries, nil
}

func (r *datastoreEntryRepository) GetEntry(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	var entity entryEntity
	err := r.client.Get(ctx, r.keys.entryKey(ownerID, entryID), &entity)
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return models.CredentialEntry{}, ErrEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreEntryRepository.GetEntry").Msg("error getting entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entity.toEntry(), nil
}

func (r *datastoreEntryRepository) UpdateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	key := r.keys.entryKey(entry.OwnerID, entry.EntryID)

	var updated entryEntity
	_, err := r.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		if err := tx.Get(key, &updated); err != nil {
			if errors.Is(err, datastore.ErrNoSuchEntity) {
				return ErrEntryNotFound
			}
			return err
		}
		updated.Website = entry.Website
		updated.Username = entry.Username
		updated.Password = entry.Password
		updated.UpdatedAt = r.now()
		_, err := tx.Put(key, &updated)
		return err
	})
	if errors.Is(err, ErrEntryNotFound) {
		return models.CredentialEntry{}, ErrEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreEntryRepository.UpdateEntry").Msg("error updating entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrRunningTransaction, err)
	}
	updated.Key = key

	return updated.toEntry(), nil
}

func (r *datastoreEntryRepository) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	key := r.keys.entryKey(ownerID, entryID)

	_, err := r.client.RunInTransaction(ctx, func(tx *datastore.Transaction) error {
		var entity entryEntity
		if err := tx.Get(key, &entity); err != nil {
			if errors.Is(err, datastore.ErrNoSuchEntity) {
				return ErrEntryNotFound
			}
			return err
		}
		return tx.Delete(key)
	})
	if errors.Is(err, ErrEntryNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*datastoreEntryRepository.DeleteEntry").Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrRunningTransaction, err)
	}

	return nil
}
