// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"
)

const opaqueSecretBytes = 16

// secretHasher is the bcrypt implementation of [SecretHasher].
type secretHasher struct {
	cost int
}

// NewSecretHasher constructs a [SecretHasher] with the given bcrypt cost.
// Values outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewSecretHasher(cost int) SecretHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &secretHasher{cost: cost}
}

func (h *secretHasher) HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret: %w", err)
	}
	return string(hash), nil
}

func (h *secretHasher) CompareSecret(hash, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// GenerateOpaqueSecret reads 16 bytes from the OS CSPRNG and encodes them
// as unpadded base64url.
func (h *secretHasher) GenerateOpaqueSecret() (string, error) {
	b := make([]byte, opaqueSecretBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", fmt.Errorf("error generating opaque secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
