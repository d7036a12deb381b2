// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/session"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
)

// BrowserOpener hands a URL to whatever lets the user reach it.
type BrowserOpener func(url string) error

type nonceGenerator interface {
	Generate() string
}

var _ session.IdentityClient = (*IdentityClient)(nil)

// IdentityClient is the client side of the identity provider. It keeps the
// principal token in a [store.SessionStore] and reports every change of it
// to its subscribers.
type IdentityClient struct {
	server   ServerAdapter
	sessions store.SessionStore
	open     BrowserOpener
	nonces   nonceGenerator
	poll     time.Duration

	mu        sync.Mutex
	listeners map[int]func(*models.Principal)
	nextID    int

	logger *logger.Logger
}

func NewIdentityClient(server ServerAdapter, sessions store.SessionStore, open BrowserOpener, poll time.Duration, logger *logger.Logger) *IdentityClient {
	if poll <= 0 {
		poll = time.Second
	}
	return &IdentityClient{
		server:    server,
		sessions:  sessions,
		open:      open,
		nonces:    utils.NewUUIDGenerator(),
		poll:      poll,
		listeners: make(map[int]func(*models.Principal)),
		logger:    logger,
	}
}

func (c *IdentityClient) SignInWithPassword(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	auth, err := c.server.LogInWithPassword(ctx, creds)
	if err != nil {
		return models.Principal{}, err
	}
	return c.signedIn(auth)
}

func (c *IdentityClient) SignUpWithPassword(ctx context.Context, req models.SignUpRequest) (models.Principal, error) {
	auth, err := c.server.SignUpWithPassword(ctx, req)
	if err != nil {
		return models.Principal{}, err
	}
	return c.signedIn(auth)
}

// SignInWithPopup opens the consent page and polls the server until the
// provider callback has stored the result or ctx is done.
func (c *IdentityClient) SignInWithPopup(ctx context.Context, provider models.Provider) (models.Principal, error) {
	nonce := c.nonces.Generate()
	if err := c.open(c.server.FederatedStartURL(provider, config.FederatedModePopup, nonce, "")); err != nil {
		return models.Principal{}, fmt.Errorf("open consent page: %w", err)
	}

	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return models.Principal{}, fmt.Errorf("%w: %s sign-in not finished", service.ErrTimeout, provider)
			}
			return models.Principal{}, ctx.Err()
		case <-ticker.C:
		}

		auth, err := c.server.RedirectResult(ctx, nonce)
		if err != nil {
			if ctx.Err() != nil {
				continue
			}
			return models.Principal{}, err
		}
		if auth != nil {
			return c.signedIn(*auth)
		}
	}
}

// SignInWithRedirect records the flow nonce and hands the consent page to
// the browser. The result is collected by [IdentityClient.PendingRedirectResult]
// on a later start.
func (c *IdentityClient) SignInWithRedirect(ctx context.Context, provider models.Provider) error {
	current, err := c.load()
	if err != nil {
		return err
	}

	current.PendingNonce = c.nonces.Generate()
	current.PendingProvider = provider
	if err = c.sessions.Save(current); err != nil {
		return err
	}

	if err = c.open(c.server.FederatedStartURL(provider, config.FederatedModeRedirect, current.PendingNonce, "")); err != nil {
		return fmt.Errorf("open consent page: %w", err)
	}
	return nil
}

// PendingRedirectResult collects the outcome of a redirect sign-in started
// by an earlier run. While the server has nothing for the nonce it is kept
// and [session.ErrRedirectPending] is returned.
func (c *IdentityClient) PendingRedirectResult(ctx context.Context) (*models.Principal, error) {
	current, err := c.load()
	if err != nil {
		return nil, err
	}
	if !current.HasPending() {
		return nil, nil
	}

	auth, err := c.server.RedirectResult(ctx, current.PendingNonce)
	if err != nil {
		return nil, err
	}
	if auth == nil {
		c.logger.Debug().Str("provider", string(current.PendingProvider)).Msg("redirect sign-in still pending")
		return nil, fmt.Errorf("%w: %s", session.ErrRedirectPending, current.PendingProvider)
	}

	principal, err := c.signedIn(*auth)
	if err != nil {
		return nil, err
	}
	return &principal, nil
}

// SubscribeAuthState reports the restored principal to fn at once and every
// later sign-in or sign-out.
func (c *IdentityClient) SubscribeAuthState(fn func(*models.Principal)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	fn(c.restore())

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *IdentityClient) SignOut(ctx context.Context) error {
	c.server.SetToken("")
	err := c.sessions.Clear()
	c.notify(nil)
	return err
}

// restore loads the persisted token. Unreadable or expired tokens count as
// signed out.
func (c *IdentityClient) restore() *models.Principal {
	current, err := c.load()
	if err != nil {
		c.logger.Err(err).Msg("failed to load session")
		return nil
	}
	if current.Token == "" {
		return nil
	}

	principal, err := utils.ParsePrincipalUnverified(current.Token)
	if err != nil {
		c.logger.Warn().Err(err).Msg("dropping unusable session token")
		return nil
	}

	c.server.SetToken(current.Token)
	return &principal
}

func (c *IdentityClient) signedIn(auth models.AuthResponse) (models.Principal, error) {
	if err := c.sessions.Save(store.LocalSession{Token: auth.Token}); err != nil {
		return models.Principal{}, err
	}
	c.server.SetToken(auth.Token)

	principal := auth.Principal
	c.notify(&principal)
	return principal, nil
}

func (c *IdentityClient) load() (store.LocalSession, error) {
	current, err := c.sessions.Load()
	if errors.Is(err, store.ErrLocalSessionNotFound) {
		return store.LocalSession{}, nil
	}
	return current, err
}

func (c *IdentityClient) notify(p *models.Principal) {
	c.mu.Lock()
	listeners := make([]func(*models.Principal), 0, len(c.listeners))
	for _, fn := range c.listeners {
		listeners = append(listeners, fn)
	}
	c.mu.Unlock()

	for _, fn := range listeners {
		if p == nil {
			fn(nil)
			continue
		}
		cp := *p
		fn(&cp)
	}
}
