package service

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

// CredentialValidationService rejects empty fields before the wrapped
// service is reached, so an invalid request never writes.
type CredentialValidationService struct {
	inner     CredentialService
	validator validators.Validator
}

func NewCredentialValidationService() CredentialServiceWrapper {
	return &CredentialValidationService{
		validator: validators.NewCredentialValidator(),
	}
}

func (v *CredentialValidationService) ResolveOwner(ctx context.Context, principal models.Principal) (string, error) {
	return v.inner.ResolveOwner(ctx, principal)
}

func (v *CredentialValidationService) Add(ctx context.Context, ownerID string, in models.EntryInput) (models.CredentialEntry, error) {
	if err := v.validateIDs(ctx, ownerID, "", validators.FieldOwnerID); err != nil {
		return models.CredentialEntry{}, err
	}
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.CredentialEntry{}, validationError(err)
	}

	return v.inner.Add(ctx, ownerID, in)
}

func (v *CredentialValidationService) List(ctx context.Context, ownerID string) ([]models.CredentialEntry, error) {
	if err := v.validateIDs(ctx, ownerID, "", validators.FieldOwnerID); err != nil {
		return nil, err
	}

	return v.inner.List(ctx, ownerID)
}

func (v *CredentialValidationService) Get(ctx context.Context, ownerID, entryID string) (models.CredentialEntry, error) {
	if err := v.validateIDs(ctx, ownerID, entryID, validators.FieldOwnerID, validators.FieldEntryID); err != nil {
		return models.CredentialEntry{}, err
	}

	return v.inner.Get(ctx, ownerID, entryID)
}

func (v *CredentialValidationService) Update(ctx context.Context, ownerID, entryID string, in models.EntryInput) (models.CredentialEntry, error) {
	if err := v.validateIDs(ctx, ownerID, entryID, validators.FieldOwnerID, validators.FieldEntryID); err != nil {
		return models.CredentialEntry{}, err
	}
	if err := v.validator.Validate(ctx, in); err != nil {
		return models.CredentialEntry{}, validationError(err)
	}

	return v.inner.Update(ctx, ownerID, entryID, in)
}

func (v *CredentialValidationService) Delete(ctx context.Context, ownerID, entryID string) error {
	if err := v.validateIDs(ctx, ownerID, entryID, validators.FieldOwnerID, validators.FieldEntryID); err != nil {
		return err
	}

	return v.inner.Delete(ctx, ownerID, entryID)
}

func (v *CredentialValidationService) Wrap(inner CredentialService) CredentialService {
	v.inner = inner
	return v
}

func (v *CredentialValidationService) validateIDs(ctx context.Context, ownerID, entryID string, fields ...string) error {
	entry := models.CredentialEntry{OwnerID: ownerID, EntryID: entryID}
	if err := v.validator.Validate(ctx, entry, fields...); err != nil {
		return validationError(err)
	}
	return nil
}
