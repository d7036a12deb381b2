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

// ownerRepository is the SQL implementation of [OwnerRepository] over the
// "owners" table. LoginKey uniqueness is enforced by the table's UNIQUE
// constraint.
type ownerRepository struct {
	db     *DB
	logger *logger.Logger
	ids    IDGenerator
	now    func() time.Time
}

// NewOwnerRepository constructs an [OwnerRepository] backed by the provided
// database connection and logger.
func NewOwnerRepository(db *DB, ids IDGenerator, logger *logger.Logger) OwnerRepository {
	logger.Debug().Msg("creating owner repository")
	return &ownerRepository{
		db:     db,
		logger: logger,
		ids:    ids,
		now:    utcNow,
	}
}

// CreateOwner assigns OwnerID and CreatedAt and inserts the record.
//
// Error handling:
//   - unique violation on login_key → [ErrLoginKeyTaken].
//   - any other driver-level error → [ErrExecutingStatement].
func (r *ownerRepository) CreateOwner(ctx context.Context, owner models.Owner) (models.Owner, error) {
	log := logger.FromContext(ctx)

	owner.OwnerID = r.ids.Generate()
	owner.CreatedAt = r.now()

	query, args, err := buildInsertOwnerQuery(r.db.builder, owner)
	if err != nil {
		log.Err(err).Str("func", "*ownerRepository.CreateOwner").Msg("error building insert query")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*ownerRepository.CreateOwner").Msg("error inserting owner")
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.Owner{}, ErrLoginKeyTaken
		}
		return models.Owner{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return owner, nil
}

func (r *ownerRepository) FindOwnerByLoginKey(ctx context.Context, loginKey string) (models.Owner, error) {
	return r.findOwner(ctx, "login_key", loginKey)
}

func (r *ownerRepository) FindOwnerByPrincipalID(ctx context.Context, principalID string) (models.Owner, error) {
	return r.findOwner(ctx, "principal_id", principalID)
}

func (r *ownerRepository) GetOwner(ctx context.Context, ownerID string) (models.Owner, error) {
	return r.findOwner(ctx, "owner_id", ownerID)
}

func (r *ownerRepository) findOwner(ctx context.Context, column, value string) (models.Owner, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectOwnerQuery(r.db.builder, column, value)
	if err != nil {
		log.Err(err).Str("func", "*ownerRepository.findOwner").Msg("error building select query")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var owner models.Owner
	err = r.db.withRetry(ctx, func(ctx context.Context) error {
		return r.db.QueryRowContext(ctx, query, args...).
			Scan(&owner.OwnerID, &owner.LoginKey, &owner.PrincipalID, &owner.Secret, &owner.AvatarURL, &owner.CreatedAt)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Owner{}, ErrOwnerNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*ownerRepository.findOwner").Str("by", column).Msg("error selecting owner")
		return models.Owner{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	owner.CreatedAt = owner.CreatedAt.UTC()

	return owner, nil
}

func utcNow() time.Time {
	return time.Now().UTC()
}
