// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Owner is the canonical per-user record. Every credential entry is anchored
// to exactly one Owner through OwnerID.
type Owner struct {
	// OwnerID is assigned by the store when the record is created.
	OwnerID string `json:"owner_id"`

	// LoginKey is the email or username used to authenticate.
	// It is unique across all owners.
	LoginKey string `json:"login_key"`

	// PrincipalID is the subject identifier issued by the identity provider.
	// Listener-driven lookups resolve owners through it.
	PrincipalID string `json:"principal_id"`

	// AvatarURL is optional.
	AvatarURL string `json:"avatar_url,omitempty"`

	// Secret holds a bcrypt hash. For password signups it is the hash of the
	// supplied secret, for federated signups the hash of a generated opaque
	// placeholder. It is never a provider token and never leaves the server.
	Secret string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// SignUpRequest carries the inputs of an owner sign-up.
type SignUpRequest struct {
	LoginKey    string `json:"login_key"`
	Secret      string `json:"secret"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	PrincipalID string `json:"-"`
}
