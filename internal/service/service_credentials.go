package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/models"
)

// credentialService implements [CredentialService]. Every operation checks
// the owner record first, so an owner removed out of band yields
// [ErrOwnerNotFound] instead of touching orphaned entries.
type credentialService struct {
	owners  store.OwnerRepository
	entries store.EntryRepository
	timeout time.Duration
	logger  *logger.Logger
}

func NewCredentialService(owners store.OwnerRepository, entries store.EntryRepository, timeout time.Duration, logger *logger.Logger) CredentialService {
	return &credentialService{
		owners:  owners,
		entries: entries,
		timeout: timeout,
		logger:  logger,
	}
}

// ResolveOwner looks the owner up by email, or by principal id when the
// principal carries no email. The lookup is repeated on every call.
func (s *credentialService) ResolveOwner(ctx context.Context, principal models.Principal) (string, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var (
		owner models.Owner
		err   error
	)
	switch {
	case principal.Email != "":
		owner, err = s.owners.FindOwnerByLoginKey(ctx, principal.Email)
	case principal.UID != "":
		owner, err = s.owners.FindOwnerByPrincipalID(ctx, principal.UID)
	default:
		return "", ErrUnauthorized
	}
	if err != nil {
		return "", storeError(err)
	}

	return owner.OwnerID, nil
}

func (s *credentialService) Add(ctx context.Context, ownerID string, in models.EntryInput) (models.CredentialEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireOwner(ctx, ownerID); err != nil {
		return models.CredentialEntry{}, err
	}

	entry, err := s.entries.CreateEntry(ctx, in.Apply(models.CredentialEntry{OwnerID: ownerID}))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*credentialService.Add").Msg("entry creation failed")
		return models.CredentialEntry{}, storeError(err)
	}

	return entry, nil
}

func (s *credentialService) List(ctx context.Context, ownerID string) ([]models.CredentialEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireOwner(ctx, ownerID); err != nil {
		return nil, err
	}

	entries, err := s.entries.ListEntries(ctx, ownerID)
	if err != nil {
		return nil, storeError(err)
	}
	if entries == nil {
		entries = []models.CredentialEntry{}
	}

	return entries, nil
}

func (s *credentialService) Get(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireOwner(ctx, ownerID); err != nil {
		return models.CredentialEntry{}, err
	}

	entry, err := s.entries.GetEntry(ctx, ownerID, entryID)
	if err != nil {
		return models.CredentialEntry{}, storeError(err)
	}

	return entry, nil
}

// Update replaces website, username and password. CreatedAt is preserved,
// UpdatedAt is stamped by the repository.
func (s *credentialService) Update(ctx context.Context, ownerID, entryID string, in models.EntryInput) (models.CredentialEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireOwner(ctx, ownerID); err != nil {
		return models.CredentialEntry{}, err
	}

	entry, err := s.entries.UpdateEntry(ctx, in.Apply(models.CredentialEntry{OwnerID: ownerID, EntryID: entryID}))
	if err != nil {
		return models.CredentialEntry{}, storeError(err)
	}

	return entry, nil
}

func (s *credentialService) Delete(ctx context.Context, ownerID, entryID string) error {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.requireOwner(ctx, ownerID); err != nil {
		return err
	}

	return storeError(s.entries.DeleteEntry(ctx, ownerID, entryID))
}

func (s *credentialService) requireOwner(ctx context.Context, ownerID string) error {
	if _, err := s.owners.GetOwner(ctx, ownerID); err != nil {
		return storeError(err)
	}
	return nil
}
