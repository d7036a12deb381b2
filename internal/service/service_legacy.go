package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

// LegacyOwnerID scopes the entries of the unauthenticated routes. No owner
// record carries this id.
const LegacyOwnerID = "_legacy"

// legacyService implements [LegacyService] directly on the entry repository.
type legacyService struct {
	entries   store.EntryRepository
	validator validators.Validator
	timeout   time.Duration
	logger    *logger.Logger
}

func NewLegacyService(entries store.EntryRepository, timeout time.Duration, logger *logger.Logger) LegacyService {
	return &legacyService{
		entries:   entries,
		validator: validators.NewCredentialValidator(),
		timeout:   timeout,
		logger:    logger,
	}
}

func (s *legacyService) Add(ctx context.Context, in models.EntryInput) (models.CredentialEntry, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.CredentialEntry{}, validationError(err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	entry, err := s.entries.CreateEntry(ctx, in.Apply(models.CredentialEntry{OwnerID: LegacyOwnerID}))
	return entry, storeError(err)
}

func (s *legacyService) List(ctx context.Context) ([]models.CredentialEntry, error) {
	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	entries, err := s.entries.ListEntries(ctx, LegacyOwnerID)
	if err != nil {
		return nil, storeError(err)
	}
	if entries == nil {
		entries = []models.CredentialEntry{}
	}

	return entries, nil
}

func (s *legacyService) Get(ctx context.Context, entryID string) (models.CredentialEntry, error) {
	if entryID == "" {
		return models.CredentialEntry{}, validationError(validators.ErrEmptyEntryID)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	entry, err := s.entries.GetEntry(ctx, LegacyOwnerID, entryID)
	return entry, storeError(err)
}

func (s *legacyService) Update(ctx context.Context, entryID string, in models.EntryInput) (models.CredentialEntry, error) {
	if entryID == "" {
		return models.CredentialEntry{}, validationError(validators.ErrEmptyEntryID)
	}
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.CredentialEntry{}, validationError(err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	entry, err := s.entries.UpdateEntry(ctx, in.Apply(models.CredentialEntry{OwnerID: LegacyOwnerID, EntryID: entryID}))
	return entry, storeError(err)
}

func (s *legacyService) Delete(ctx context.Context, entryID string) error {
	if entryID == "" {
		return validationError(validators.ErrEmptyEntryID)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	return storeError(s.entries.DeleteEntry(ctx, LegacyOwnerID, entryID))
}
