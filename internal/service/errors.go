package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/store"
)

// Error taxonomy shared by every service. Handlers map these to status codes,
// the client adapter maps status codes back to them.
var (
	ErrValidation               = errors.New("validation error")
	ErrDuplicateOwner           = errors.New("duplicate owner")
	ErrOwnerNotFound            = errors.New("owner not found")
	ErrNotFound                 = errors.New("not found")
	ErrMissingIdentityAttribute = errors.New("missing identity attribute")
	ErrInvalidCredentials       = errors.New("invalid credentials")
	ErrProvider                 = errors.New("identity provider error")
	ErrStore                    = errors.New("store error")
	ErrTimeout                  = errors.New("timeout")
	ErrUnauthorized             = errors.New("unauthorized")
)

var (
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// storeError translates a repository error into the taxonomy. The original
// error stays in the chain.
func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrLoginKeyTaken):
		return fmt.Errorf("%w: %w", ErrDuplicateOwner, err)
	case errors.Is(err, store.ErrOwnerNotFound):
		return fmt.Errorf("%w: %w", ErrOwnerNotFound, err)
	case errors.Is(err, store.ErrEntryNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
}

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidation, err)
}
