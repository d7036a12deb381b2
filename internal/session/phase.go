package session

import (
	"fmt"

	"github.com/MKhiriev/go-pass-guard/models"
)

type Phase int

const (
	Unauthenticated Phase = iota
	// AuthPending means a redirect sign-in was started and its result has
	// not been picked up yet.
	AuthPending
	Authenticated
	// Linked means the principal resolved to an owner record.
	Linked
	// Unlinked means no owner record matches the principal. The next step
	// is sign-up.
	Unlinked
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case AuthPending:
		return "auth-pending"
	case Authenticated:
		return "authenticated"
	case Linked:
		return "linked"
	case Unlinked:
		return "unlinked"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Strategy selects how a federated sign-in reaches the provider.
type Strategy string

const (
	// StrategyPopup waits for the provider and returns the principal.
	StrategyPopup Strategy = "popup"
	// StrategyRedirect hands over to the browser and returns immediately.
	// The principal arrives through the redirect result on a later start.
	StrategyRedirect Strategy = "redirect"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyPopup, StrategyRedirect:
		return Strategy(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// Session is the process-local view of who is signed in.
type Session struct {
	Principal       *models.Principal
	Phase           Phase
	PendingRedirect bool
	Owner           *models.Owner
}

// clone copies s so callers never share the pointed-to values.
func (s Session) clone() Session {
	out := s
	if s.Principal != nil {
		p := *s.Principal
		out.Principal = &p
	}
	if s.Owner != nil {
		o := *s.Owner
		out.Owner = &o
	}
	return out
}
