// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/google/uuid"
)

// TokenIssuer signs principal tokens.
type TokenIssuer interface {
	CreateToken(ctx context.Context, principal models.Principal) (models.Token, error)
}

// Authenticator drives every login method and turns its principal into an
// [models.AuthResponse].
type Authenticator struct {
	providers map[models.Provider]Provider
	tokens    TokenIssuer
	pending   *PendingStore
	stateKey  string
	timeout   time.Duration
	logger    *logger.Logger
}

// NewAuthenticator registers providers by name. stateKey signs the oauth
// state cookie.
func NewAuthenticator(providers []Provider, tokens TokenIssuer, pending *PendingStore, stateKey string, timeout time.Duration, logger *logger.Logger) *Authenticator {
	byName := make(map[models.Provider]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}

	return &Authenticator{
		providers: byName,
		tokens:    tokens,
		pending:   pending,
		stateKey:  stateKey,
		timeout:   timeout,
		logger:    logger,
	}
}

func (a *Authenticator) federated(name models.Provider) (FederatedProvider, error) {
	p, ok := a.providers[name].(FederatedProvider)
	if !ok {
		return nil, fmt.Errorf("%w: %w: %q", service.ErrValidation, ErrProviderNotSupported, name)
	}
	return p, nil
}

// Start begins a federated flow. It returns the consent URL and the signed
// value of the state cookie the callback must present.
func (a *Authenticator) Start(ctx context.Context, name models.Provider, mode, nonce, callback string) (string, string, error) {
	p, err := a.federated(name)
	if err != nil {
		return "", "", err
	}

	state := uuid.NewString()
	a.pending.BeginFlow(state, Flow{Provider: name, Mode: mode, Nonce: nonce, Callback: callback})
	logger.FromContext(ctx).Debug().Str("provider", string(name)).Str("mode", mode).Msg("federated flow started")

	return p.AuthCodeURL(state), utils.SignValue(state, a.stateKey), nil
}

// Complete finishes the flow identified by state. The result is also kept
// under the flow nonce for a later redirect-result pickup.
func (a *Authenticator) Complete(ctx context.Context, name models.Provider, state, stateCookie, code string) (models.AuthResponse, Flow, error) {
	p, err := a.federated(name)
	if err != nil {
		return models.AuthResponse{}, Flow{}, err
	}

	signed, ok := utils.VerifySignedValue(stateCookie, a.stateKey)
	if !ok || signed != state {
		return models.AuthResponse{}, Flow{}, fmt.Errorf("%w: %w", service.ErrUnauthorized, ErrInvalidState)
	}

	flow, ok := a.pending.TakeFlow(state)
	if !ok || flow.Provider != name {
		return models.AuthResponse{}, Flow{}, fmt.Errorf("%w: %w", service.ErrUnauthorized, ErrInvalidState)
	}

	principal, err := a.authenticate(ctx, p, models.Credentials{Code: code})
	if err != nil {
		return models.AuthResponse{}, flow, err
	}

	resp, err := a.IssueFor(ctx, principal)
	if err != nil {
		return models.AuthResponse{}, flow, err
	}

	if flow.Nonce != "" {
		a.pending.PutResult(flow.Nonce, resp)
	}

	return resp, flow, nil
}

// PasswordLogIn authenticates a login key and secret.
func (a *Authenticator) PasswordLogIn(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	p, ok := a.providers[models.ProviderPassword]
	if !ok {
		return models.AuthResponse{}, fmt.Errorf("%w: %q", ErrProviderNotSupported, models.ProviderPassword)
	}

	principal, err := a.authenticate(ctx, p, creds)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return a.IssueFor(ctx, principal)
}

// IssueFor signs a token for an already authenticated principal.
func (a *Authenticator) IssueFor(ctx context.Context, principal models.Principal) (models.AuthResponse, error) {
	token, err := a.tokens.CreateToken(ctx, principal)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{Token: token.String(), Principal: principal}, nil
}

// RedirectResult hands out the result stored under nonce exactly once.
func (a *Authenticator) RedirectResult(nonce string) (models.AuthResponse, bool) {
	return a.pending.TakeResult(nonce)
}

// Evict drops expired flows and results.
func (a *Authenticator) Evict(ctx context.Context) error {
	if n := a.pending.Evict(); n > 0 {
		a.logger.Debug().Int("removed", n).Msg("expired pending auth state evicted")
	}
	return nil
}

func (a *Authenticator) authenticate(ctx context.Context, p Provider, creds models.Credentials) (models.Principal, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	principal, err := p.Authenticate(ctx, creds)
	switch {
	case err == nil:
		return principal, nil
	case errors.Is(err, context.DeadlineExceeded):
		return models.Principal{}, fmt.Errorf("%w: %w", service.ErrTimeout, err)
	case p.Name().IsFederated():
		return models.Principal{}, fmt.Errorf("%w: %w", service.ErrProvider, err)
	default:
		return models.Principal{}, err
	}
}
