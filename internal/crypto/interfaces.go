package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/secret_hasher_mock.go -package=mock

// SecretHasher owns every owner-secret operation of the server. Owner records
// never hold a plaintext secret: password sign-ups store a bcrypt hash of the
// supplied secret, federated sign-ups the hash of a generated placeholder.
type SecretHasher interface {
	// HashSecret returns the bcrypt hash of secret.
	HashSecret(secret string) (string, error)

	// CompareSecret reports whether secret matches hash.
	CompareSecret(hash, secret string) bool

	// GenerateOpaqueSecret returns a random URL-safe token used when the
	// caller supplies no secret.
	GenerateOpaqueSecret() (string, error)
}
