package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/models"
)

// entryRepository is the SQL implementation of [EntryRepository] over the
// "entries" table. Every statement filters on owner_id, so an entry of a
// different owner is indistinguishable from a missing one.
type entryRepository struct {
	db     *DB
	logger *logger.Logger
	ids    IDGenerator
	now    func() time.Time
}

func NewEntryRepository(db *DB, ids IDGenerator, logger *logger.Logger) EntryRepository {
	logger.Debug().Msg("creating entry repository")
	return &entryRepository{
		db:     db,
		logger: logger,
		ids:    ids,
		now:    utcNow,
	}
}

// CreateEntry assigns EntryID, CreatedAt and UpdatedAt and inserts the entry.
func (r *entryRepository) CreateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	log := logger.FromContext(ctx)

	now := r.now()
	entry.EntryID = r.ids.Generate()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	query, args, err := buildInsertEntryQuery(r.db.builder, entry)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.CreateEntry").Msg("error building insert query")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*entryRepository.CreateEntry").Msg("error inserting entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return entry, nil
}

// ListEntries returns the owner's entries ordered by creation time. An owner
// without entries gets an empty, non-nil slice.
func (r *entryRepository) ListEntries(ctx context.Context, ownerID string) ([]models.CredentialEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntriesQuery(r.db.builder, ownerID)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.ListEntries").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var rows *sql.Rows
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var queryErr error
		rows, queryErr = r.db.QueryContext(ctx, query, args...)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.ListEntries").Msg("error selecting entries")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.CredentialEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Err(err).Str("func", "*entryRepository.ListEntries").Msg("error scanning entry")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*entryRepository.ListEntries").Msg("error iterating entries")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *entryRepository) GetEntry(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectEntryQuery(r.db.builder, ownerID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.GetEntry").Msg("error building select query")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var entry models.CredentialEntry
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var scanErr error
		entry, scanErr = scanEntry(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.CredentialEntry{}, ErrEntryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.GetEntry").Msg("error selecting entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// UpdateEntry replaces website, username and password of an existing entry
// and refreshes UpdatedAt. The stored row is returned.
func (r *entryRepository) UpdateEntry(ctx context.Context, entry models.CredentialEntry) (models.CredentialEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateEntryQuery(r.db.builder, entry, r.now())
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.UpdateEntry").Msg("error building update query")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.UpdateEntry").Msg("error updating entry")
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return models.CredentialEntry{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return models.CredentialEntry{}, ErrEntryNotFound
	}

	return r.GetEntry(ctx, entry.OwnerID, entry.EntryID)
}

func (r *entryRepository) DeleteEntry(ctx context.Context, ownerID, entryID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteEntryQuery(r.db.builder, ownerID, entryID)
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.DeleteEntry").Msg("error building delete query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var result sql.Result
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		var execErr error
		result, execErr = r.db.ExecContext(ctx, query, args...)
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*entryRepository.DeleteEntry").Msg("error deleting entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.CredentialEntry, error) {
	var e models.CredentialEntry
	if err := row.Scan(&e.EntryID, &e.OwnerID, &e.Website, &e.Username, &e.Password, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return models.CredentialEntry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.UpdatedAt = e.UpdatedAt.UTC()

	return e, nil
}
