// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/models"
	"golang.org/x/sync/errgroup"
)

const (
	sourceRedirect = "redirect-result"
	sourceListener = "auth-state"

	eventBuffer  = 16
	changeBuffer = 32
	errorBuffer  = 8
)

type event struct {
	principal *models.Principal
	source    string
	// pending marks a redirect sign-in that has no result yet.
	pending bool
}

// Machine owns the Session and the transitions between its phases.
type Machine struct {
	identity   IdentityClient
	reconciler Reconciler
	timeout    time.Duration
	logger     *logger.Logger

	events  chan event
	changes chan Session
	errs    chan error

	mu      sync.Mutex
	session Session
	// changed is closed and replaced on every transition.
	changed chan struct{}

	ready        chan struct{}
	readyOnce    sync.Once
	redirectDone bool
	listenerSeen bool
	running      bool
}

type Option func(*Machine)

// WithTimeout bounds every reconciliation call.
func WithTimeout(d time.Duration) Option {
	return func(m *Machine) { m.timeout = d }
}

func WithLogger(l *logger.Logger) Option {
	return func(m *Machine) { m.logger = l }
}

func New(identity IdentityClient, reconciler Reconciler, opts ...Option) *Machine {
	m := &Machine{
		identity:   identity,
		reconciler: reconciler,
		logger:     logger.Nop(),
		events:     make(chan event, eventBuffer),
		changes:    make(chan Session, changeBuffer),
		errs:       make(chan error, errorBuffer),
		session:    Session{Phase: Unauthenticated},
		changed:    make(chan struct{}),
		ready:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run subscribes to auth state changes, checks for a pending redirect
// result once, and applies events until ctx is done. It returns nil on
// cancellation.
func (m *Machine) Run(ctx context.Context) error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}
	m.running = true
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.running = false
		m.mu.Unlock()
	}()

	g, gCtx := errgroup.WithContext(ctx)

	unsubscribe := m.identity.SubscribeAuthState(func(p *models.Principal) {
		m.push(gCtx, event{principal: p, source: sourceListener})
	})
	defer unsubscribe()

	g.Go(func() error {
		p, err := m.identity.PendingRedirectResult(gCtx)
		pending := errors.Is(err, ErrRedirectPending)
		if err != nil && !pending {
			m.report(fmt.Errorf("pending redirect result: %w", err))
		}
		m.push(gCtx, event{principal: p, source: sourceRedirect, pending: pending})
		return nil
	})

	g.Go(func() error {
		for {
			select {
			case <-gCtx.Done():
				return nil
			case ev := <-m.events:
				m.apply(gCtx, ev)
			}
		}
	})

	return g.Wait()
}

func (m *Machine) push(ctx context.Context, ev event) {
	select {
	case m.events <- ev:
	case <-ctx.Done():
	}
}

func (m *Machine) apply(ctx context.Context, ev event) {
	log := m.logger.With().Str("source", ev.source).Logger()
	defer m.markSeen(ev.source)

	if ev.principal == nil {
		switch {
		case ev.source == sourceListener:
			log.Debug().Msg("signed out")
			m.set(Session{Phase: Unauthenticated})
		case ev.pending:
			log.Debug().Msg("redirect sign-in still pending")
			m.markRedirectPending()
		}
		return
	}

	principal := *ev.principal
	m.set(Session{Principal: &principal, Phase: Authenticated})
	log.Debug().Str("uid", principal.UID).Str("provider", string(principal.Provider)).Msg("principal received")

	m.reconcile(ctx, principal)
}

// reconcile resolves principal to an owner. Failures other than a missing
// owner leave the session Authenticated.
func (m *Machine) reconcile(ctx context.Context, principal models.Principal) {
	if principal.Email == "" {
		m.report(&ReconcileError{UID: principal.UID, Err: fmt.Errorf("%w: no email", service.ErrMissingIdentityAttribute)})
		return
	}

	callCtx, cancel := m.withTimeout(ctx)
	defer cancel()

	owner, err := m.reconciler.LogIn(callCtx, principal.Email)
	switch {
	case err == nil:
		m.update(principal, func(s *Session) {
			s.Phase = Linked
			s.Owner = &owner
		})
	case errors.Is(err, service.ErrOwnerNotFound):
		m.update(principal, func(s *Session) {
			s.Phase = Unlinked
			s.Owner = nil
		})
	default:
		m.report(&ReconcileError{UID: principal.UID, Err: fmt.Errorf("%s: %w", principal.Email, err)})
	}
}

func (m *Machine) SignInWithPassword(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	return m.identity.SignInWithPassword(ctx, creds)
}

func (m *Machine) SignUpWithPassword(ctx context.Context, req models.SignUpRequest) (models.Principal, error) {
	return m.identity.SignUpWithPassword(ctx, req)
}

// SignInWithFederated starts a federated sign-in with the given strategy.
// With StrategyRedirect the returned principal is nil and the session stays
// AuthPending until the redirect result is picked up.
func (m *Machine) SignInWithFederated(ctx context.Context, provider models.Provider, strategy Strategy) (*models.Principal, error) {
	switch strategy {
	case StrategyPopup:
		p, err := m.identity.SignInWithPopup(ctx, provider)
		if err != nil {
			return nil, err
		}
		return &p, nil
	case StrategyRedirect:
		prev := m.Snapshot()
		m.set(Session{Phase: AuthPending, PendingRedirect: true})
		if err := m.identity.SignInWithRedirect(ctx, provider); err != nil {
			m.set(prev)
			return nil, err
		}
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}

// CompleteSignUp creates the owner record of an Unlinked principal.
func (m *Machine) CompleteSignUp(ctx context.Context) (models.Owner, error) {
	current := m.Snapshot()
	if current.Phase != Unlinked || current.Principal == nil {
		return models.Owner{}, fmt.Errorf("%w: sign-up needs %s, session is %s", ErrInvalidPhase, Unlinked, current.Phase)
	}
	principal := *current.Principal

	callCtx, cancel := m.withTimeout(ctx)
	defer cancel()

	owner, err := m.reconciler.SignUp(callCtx, principal)
	if err != nil {
		return models.Owner{}, err
	}
	m.update(principal, func(s *Session) {
		s.Phase = Linked
		s.Owner = &owner
	})
	return owner, nil
}

// SignOut drops the local session first, then signs out of the provider.
func (m *Machine) SignOut(ctx context.Context) error {
	m.set(Session{Phase: Unauthenticated})
	return m.identity.SignOut(ctx)
}

func (m *Machine) Snapshot() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session.clone()
}

// Changes streams every transition. Slow readers lose intermediate states.
func (m *Machine) Changes() <-chan Session {
	return m.changes
}

// Errors streams failures that did not change the phase. Reconciliation
// failures are [*ReconcileError] values naming the principal.
func (m *Machine) Errors() <-chan error {
	return m.errs
}

// Ready is closed once the startup redirect check and the first auth state
// event have both been applied.
func (m *Machine) Ready() <-chan struct{} {
	return m.ready
}

// Wait blocks until the session satisfies cond or ctx is done.
func (m *Machine) Wait(ctx context.Context, cond func(Session) bool) (Session, error) {
	for {
		m.mu.Lock()
		s := m.session.clone()
		changed := m.changed
		m.mu.Unlock()

		if cond(s) {
			return s, nil
		}
		select {
		case <-changed:
		case <-ctx.Done():
			return s, ctx.Err()
		}
	}
}

// Settled reports whether s is a phase the session rests in until the
// next sign-in or sign-out.
func Settled(s Session) bool {
	switch s.Phase {
	case Unauthenticated, Linked, Unlinked:
		return true
	default:
		return false
	}
}

func (m *Machine) set(s Session) {
	m.mu.Lock()
	m.session = s.clone()
	m.notifyLocked()
	m.mu.Unlock()
}

// update applies fn only while the session still belongs to principal, so
// a late reconciliation never overwrites a newer sign-in or a sign-out.
func (m *Machine) update(principal models.Principal, fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session.Principal == nil || m.session.Principal.UID != principal.UID {
		return
	}
	fn(&m.session)
	m.notifyLocked()
}

func (m *Machine) notifyLocked() {
	close(m.changed)
	m.changed = make(chan struct{})

	select {
	case m.changes <- m.session.clone():
	default:
		m.logger.Debug().Str("phase", m.session.Phase.String()).Msg("change dropped, no reader")
	}
}

// markRedirectPending flags an unfinished redirect sign-in. A restored
// principal keeps its phase.
func (m *Machine) markRedirectPending() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.PendingRedirect = true
	if m.session.Principal == nil {
		m.session.Phase = AuthPending
	}
	m.notifyLocked()
}

func (m *Machine) markSeen(source string) {
	m.mu.Lock()
	switch source {
	case sourceRedirect:
		m.redirectDone = true
	case sourceListener:
		m.listenerSeen = true
	}
	done := m.redirectDone && m.listenerSeen
	m.mu.Unlock()

	if done {
		m.readyOnce.Do(func() { close(m.ready) })
	}
}

func (m *Machine) report(err error) {
	m.logger.Err(err).Msg("session error")
	select {
	case m.errs <- err:
	default:
	}
}

func (m *Machine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if m.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, m.timeout)
}
