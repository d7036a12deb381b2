package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// PrincipalClaims is the claim set carried by principal tokens.
// The subject claim holds the principal UID.
type PrincipalClaims struct {
	jwt.RegisteredClaims

	Email       string   `json:"email,omitempty"`
	DisplayName string   `json:"name,omitempty"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	Provider    Provider `json:"provider,omitempty"`
}

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.Token] for low-level token operations and [PrincipalClaims]
// for claim access. SignedString holds the compact serialized form
// (header.payload.signature) ready to be sent in an Authorization header or
// persisted in the client session file.
type Token struct {
	*jwt.Token `json:"-"`

	PrincipalClaims

	SignedString string `json:"-"`
}

// Principal rebuilds the authenticated identity from the token claims.
func (t *Token) Principal() Principal {
	return t.PrincipalClaims.Principal()
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// NewPrincipalClaims copies the principal attributes into a claim set.
func NewPrincipalClaims(p Principal) PrincipalClaims {
	return PrincipalClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: p.UID},
		Email:            p.Email,
		DisplayName:      p.DisplayName,
		AvatarURL:        p.AvatarURL,
		Provider:         p.Provider,
	}
}

// Principal rebuilds the authenticated identity from the claim set.
func (c PrincipalClaims) Principal() Principal {
	return Principal{
		UID:         c.Subject,
		Email:       c.Email,
		DisplayName: c.DisplayName,
		AvatarURL:   c.AvatarURL,
		Provider:    c.Provider,
	}
}
