package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/models"
)

var _ session.Reconciler = (*OwnerReconciler)(nil)

// OwnerReconciler resolves principals to owner records through the server.
type OwnerReconciler struct {
	server ServerAdapter
}

func NewOwnerReconciler(server ServerAdapter) *OwnerReconciler {
	return &OwnerReconciler{server: server}
}

// LogIn asks the server for the owner of the current token and checks that
// it is the one keyed by loginKey. Login keys compare exactly, as the
// stores look them up.
func (r *OwnerReconciler) LogIn(ctx context.Context, loginKey string) (models.Owner, error) {
	owner, err := r.server.CurrentOwner(ctx)
	if err != nil {
		return models.Owner{}, err
	}
	if owner.LoginKey != loginKey {
		return models.Owner{}, fmt.Errorf("%w: got %q, want %q", ErrLoginKeyMismatch, owner.LoginKey, loginKey)
	}
	return owner, nil
}

func (r *OwnerReconciler) SignUp(ctx context.Context, principal models.Principal) (models.Owner, error) {
	return r.server.SignUpOwner(ctx, principal.AvatarURL)
}
