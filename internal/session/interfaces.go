package session

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/session_mock.go -package=mock

// IdentityClient is the client side of the identity provider.
//
// Every successful sign-in, and SignOut, must also be reported to the
// subscribers of SubscribeAuthState.
type IdentityClient interface {
	SignInWithPassword(ctx context.Context, creds models.Credentials) (models.Principal, error)
	SignUpWithPassword(ctx context.Context, req models.SignUpRequest) (models.Principal, error)
	SignInWithPopup(ctx context.Context, provider models.Provider) (models.Principal, error)
	SignInWithRedirect(ctx context.Context, provider models.Provider) error

	// PendingRedirectResult returns the principal of a finished redirect
	// sign-in, or nil when there is none.
	PendingRedirectResult(ctx context.Context) (*models.Principal, error)

	// SubscribeAuthState calls fn with the current principal (nil when
	// signed out) right away and on every later change.
	SubscribeAuthState(fn func(*models.Principal)) (unsubscribe func())

	SignOut(ctx context.Context) error
}

// Reconciler maps principals onto owner records.
type Reconciler interface {
	// LogIn resolves the owner with loginKey. It never writes and fails with
	// service.ErrOwnerNotFound when there is none.
	LogIn(ctx context.Context, loginKey string) (models.Owner, error)

	// SignUp creates the owner record of principal.
	SignUp(ctx context.Context, principal models.Principal) (models.Owner, error)
}
