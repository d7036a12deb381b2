package session

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownStrategy = errors.New("unknown federated strategy")
	ErrInvalidPhase    = errors.New("operation not allowed in current phase")
	ErrAlreadyRunning  = errors.New("session machine already running")

	// ErrRedirectPending is returned by [IdentityClient.PendingRedirectResult]
	// when a redirect sign-in was started but has no result yet.
	ErrRedirectPending = errors.New("redirect sign-in has no result yet")
)

// ReconcileError is a failed owner lookup for the principal UID.
type ReconcileError struct {
	UID string
	Err error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile %s: %v", e.UID, e.Err)
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}
