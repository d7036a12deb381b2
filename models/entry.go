// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"strings"
	"time"
)

// CredentialEntry is one stored website/username/password record owned by
// exactly one Owner.
type CredentialEntry struct {
	// EntryID is assigned by the store.
	EntryID string `json:"entry_id"`

	// OwnerID scopes the entry. It is internal and never serialised.
	OwnerID string `json:"-"`

	Website  string `json:"website"`
	Username string `json:"username"`

	// Password is stored verbatim.
	Password string `json:"password"`

	// CreatedAt and UpdatedAt are stamped by the repository.
	// Client-supplied values are ignored.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EntryInput holds the three mutable fields of a credential entry.
type EntryInput struct {
	Website  string `json:"website"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Apply replaces the mutable fields of e with the ones from in.
func (in EntryInput) Apply(e CredentialEntry) CredentialEntry {
	e.Website = in.Website
	e.Username = in.Username
	e.Password = in.Password
	return e
}

// FilterEntries returns the entries whose website or username contains term,
// ignoring case. An empty term returns entries unchanged.
func FilterEntries(entries []CredentialEntry, term string) []CredentialEntry {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return entries
	}

	filtered := make([]CredentialEntry, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Website), term) ||
			strings.Contains(strings.ToLower(e.Username), term) {
			filtered = append(filtered, e)
		}
	}

	return filtered
}

// MaskPassword hides every character of password.
func MaskPassword(password string) string {
	return strings.Repeat("*", len([]rune(password)))
}
