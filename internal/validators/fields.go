// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

// Field name constants used to restrict Validate to a subset of fields.
const (
	// FieldWebsite targets the website of a credential entry.
	FieldWebsite = "website"

	// FieldUsername targets the username of a credential entry.
	FieldUsername = "username"

	// FieldPassword targets the stored password of a credential entry.
	FieldPassword = "password"

	// FieldLoginKey targets the login key of a sign-up or sign-in.
	FieldLoginKey = "login_key"

	// FieldSecret targets the secret of a password sign-in.
	FieldSecret = "secret"

	// FieldOwnerID targets the owner scope of an entry.
	FieldOwnerID = "owner_id"

	// FieldEntryID targets the identifier of an entry.
	FieldEntryID = "entry_id"
)
