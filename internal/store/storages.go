package store

import (
	"context"
	"fmt"
	"io"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
)

// Storages groups the server-side repositories into a single value that can
// be passed to the service layer.
type Storages struct {
	Owners  OwnerRepository
	Entries EntryRepository

	closer io.Closer
}

// NewStorages opens the backend selected by cfg.DB.Driver:
//   - postgres and sqlite connect, then run the embedded migrations.
//   - datastore opens a Cloud Datastore client.
//   - memory keeps everything in process.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")
	ids := utils.NewUUIDGenerator()

	switch cfg.DB.Driver {
	case config.DriverPostgres, config.DriverSQLite:
		var (
			db  *DB
			err error
		)
		if cfg.DB.Driver == config.DriverPostgres {
			db, err = NewConnectPostgres(ctx, cfg.DB, logger)
		} else {
			db, err = NewConnectSQLite(ctx, cfg.DB, logger)
		}
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
		}

		if err = db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}

		return &Storages{
			Owners:  NewOwnerRepository(db, ids, logger),
			Entries: NewEntryRepository(db, ids, logger),
			closer:  db,
		}, nil

	case config.DriverDatastore:
		client, err := NewDatastoreClient(ctx, cfg.Datastore, logger)
		if err != nil {
			return nil, err
		}

		return &Storages{
			Owners:  NewDatastoreOwnerRepository(client, cfg.Datastore.Namespace, ids, logger),
			Entries: NewDatastoreEntryRepository(client, cfg.Datastore.Namespace, ids, logger),
			closer:  client,
		}, nil

	case config.DriverMemory, "":
		mem := NewMemoryStore(ids)
		return &Storages{Owners: mem, Entries: mem}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
}

// Close releases the underlying connection, if any.
func (s *Storages) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
