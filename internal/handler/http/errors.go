// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header. Callers can match against them with [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrNoPrincipalInContext means a protected handler ran without the auth
	// middleware in front of it.
	ErrNoPrincipalInContext = errors.New("no principal in request context")
)

// Request errors reported with 400.
var (
	ErrInvalidJSON         = errors.New("invalid JSON was passed")
	ErrInvalidMode         = errors.New("mode must be popup or redirect")
	ErrCallbackNotAllowed  = errors.New("callback url is not allowed")
	ErrMissingNonce        = errors.New("nonce is required")
	ErrProviderDeniedLogin = errors.New("provider denied the login")
)
