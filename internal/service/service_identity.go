// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
)

// identityService is the concrete implementation of [IdentityService].
//
// The duplicate check in SignUp is a plain lookup followed by a create. Two
// concurrent sign-ups for one login key can both pass the lookup; the store
// rejects the second write with [store.ErrLoginKeyTaken], which is reported
// as [ErrDuplicateOwner] exactly like a lookup hit.
type identityService struct {
	owners    store.OwnerRepository
	hasher    crypto.SecretHasher
	ids       store.IDGenerator
	validator validators.Validator
	timeout   time.Duration
	logger    *logger.Logger
}

func NewIdentityService(owners store.OwnerRepository, hasher crypto.SecretHasher, ids store.IDGenerator, timeout time.Duration, logger *logger.Logger) IdentityService {
	return &identityService{
		owners:    owners,
		hasher:    hasher,
		ids:       ids,
		validator: validators.NewCredentialValidator(),
		timeout:   timeout,
		logger:    logger,
	}
}

// SignUp creates a new owner.
//
// A missing secret is replaced by a generated opaque token and a missing
// principal id by a generated one. The secret is stored as a bcrypt hash.
//
// Returns:
//   - [ErrValidation] if LoginKey is empty.
//   - [ErrDuplicateOwner] if an owner with LoginKey exists, either found by
//     the lookup or rejected by the store.
func (s *identityService) SignUp(ctx context.Context, req models.SignUpRequest) (models.Owner, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req, validators.FieldLoginKey); err != nil {
		return models.Owner{}, validationError(err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.owners.FindOwnerByLoginKey(ctx, req.LoginKey)
	if err == nil {
		log.Info().Str("login_key", req.LoginKey).Msg("sign-up rejected: owner exists")
		return models.Owner{}, ErrDuplicateOwner
	}
	if !errors.Is(err, store.ErrOwnerNotFound) {
		log.Err(err).Str("func", "*identityService.SignUp").Msg("owner lookup failed")
		return models.Owner{}, storeError(err)
	}

	secret := req.Secret
	if secret == "" {
		if secret, err = s.hasher.GenerateOpaqueSecret(); err != nil {
			return models.Owner{}, fmt.Errorf("error generating secret: %w", err)
		}
	}

	hash, err := s.hasher.HashSecret(secret)
	if err != nil {
		return models.Owner{}, fmt.Errorf("error hashing secret: %w", err)
	}

	principalID := req.PrincipalID
	if principalID == "" {
		principalID = s.ids.Generate()
	}

	owner, err := s.owners.CreateOwner(ctx, models.Owner{
		LoginKey:    req.LoginKey,
		PrincipalID: principalID,
		AvatarURL:   req.AvatarURL,
		Secret:      hash,
	})
	if err != nil {
		log.Err(err).Str("func", "*identityService.SignUp").Msg("owner creation failed")
		return models.Owner{}, storeError(err)
	}

	log.Info().Str("owner_id", owner.OwnerID).Msg("owner signed up")
	return owner, nil
}

// SignUpPrincipal signs up a federated principal with a generated secret.
func (s *identityService) SignUpPrincipal(ctx context.Context, principal models.Principal) (models.Owner, error) {
	if principal.Email == "" {
		return models.Owner{}, ErrMissingIdentityAttribute
	}

	return s.SignUp(ctx, models.SignUpRequest{
		LoginKey:    principal.Email,
		AvatarURL:   principal.AvatarURL,
		PrincipalID: principal.UID,
	})
}

func (s *identityService) LogIn(ctx context.Context, loginKey string) (models.Owner, error) {
	if err := s.validator.Validate(ctx, models.SignUpRequest{LoginKey: loginKey}, validators.FieldLoginKey); err != nil {
		return models.Owner{}, validationError(err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	owner, err := s.owners.FindOwnerByLoginKey(ctx, loginKey)
	if err != nil {
		return models.Owner{}, storeError(err)
	}

	return owner, nil
}

func (s *identityService) LogInByPrincipal(ctx context.Context, principalID string) (models.Owner, error) {
	if principalID == "" {
		return models.Owner{}, ErrMissingIdentityAttribute
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	owner, err := s.owners.FindOwnerByPrincipalID(ctx, principalID)
	if err != nil {
		return models.Owner{}, storeError(err)
	}

	return owner, nil
}

// Reconcile resolves the owner of principal by its email. Without an email
// nothing is queried.
func (s *identityService) Reconcile(ctx context.Context, principal models.Principal) (models.Owner, error) {
	if principal.Email == "" {
		return models.Owner{}, ErrMissingIdentityAttribute
	}

	return s.LogIn(ctx, principal.Email)
}

// VerifySecret looks up the owner by login key and compares the secret with
// the stored hash. An unknown login key and a wrong secret are both reported
// as [ErrInvalidCredentials].
func (s *identityService) VerifySecret(ctx context.Context, creds models.Credentials) (models.Owner, error) {
	if err := s.validator.Validate(ctx, creds); err != nil {
		return models.Owner{}, validationError(err)
	}

	owner, err := s.LogIn(ctx, creds.LoginKey)
	if errors.Is(err, ErrOwnerNotFound) {
		return models.Owner{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Owner{}, err
	}

	if !s.hasher.CompareSecret(owner.Secret, creds.Secret) {
		logger.FromContext(ctx).Info().Str("owner_id", owner.OwnerID).Msg("wrong secret")
		return models.Owner{}, ErrInvalidCredentials
	}

	return owner, nil
}
