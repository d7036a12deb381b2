// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used by the
// go-pass-guard server handlers and by the client adapter that maps server
// responses back to typed errors.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies. Keeping them in one place lets the client tell apart
// errors that share a status code (e.g. a missing owner and a missing entry).
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or a required field is empty.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginSecret is returned when a password sign-in does not
	// match any owner.
	MsgInvalidLoginSecret = "invalid login/secret"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a bearer token is either
	// expired or cannot be verified.
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgOwnerAlreadyExists is returned when a sign-up collides with an
	// existing login key.
	MsgOwnerAlreadyExists = "owner already exists"

	// MsgOwnerNotFound is returned when the principal has no owner record.
	// Clients route to sign-up on this message.
	MsgOwnerNotFound = "owner not found"

	// MsgEntryNotFound is returned when an entry does not exist for the
	// resolved owner.
	MsgEntryNotFound = "entry not found"

	// MsgMissingIdentityAttribute is returned when a federated provider
	// withheld the email address.
	MsgMissingIdentityAttribute = "identity provider did not disclose an email"

	// MsgProviderFailed is returned when a federated provider call fails.
	MsgProviderFailed = "identity provider failed"

	// MsgProviderNotSupported is returned for unknown or disabled providers.
	MsgProviderNotSupported = "identity provider is not supported"

	// MsgInvalidOAuthState is returned when the OAuth2 callback state does
	// not match the one issued at start.
	MsgInvalidOAuthState = "invalid oauth state"

	// MsgTimeout is returned when a store or provider call exceeded the
	// operation timeout.
	MsgTimeout = "operation timed out"

	// MsgSuccess is the legacy update acknowledgement.
	MsgSuccess = "success"

	// MsgEntrySaved and MsgEntryDeleted are legacy create/delete
	// acknowledgements.
	MsgEntrySaved   = "Password saved!"
	MsgEntryDeleted = "deleted"

	// MsgServerIsRunning is served on the root path.
	MsgServerIsRunning = "Server is running"
)
