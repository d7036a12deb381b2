package utils

import "github.com/google/uuid"

// UUIDGenerator mints the ids of owners, entries and trace spans, and the
// nonces that pair a federated sign-in with its result. Ids are UUIDv7 so
// that entries sort by creation in the SQL stores.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (*UUIDGenerator) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	// v7 only fails when the random source does
	return uuid.NewString()
}
