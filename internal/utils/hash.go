package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashString computes an HMAC-SHA256 signature over data with hashKey and
// returns it hex-encoded.
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// SignValue appends an HMAC signature to value: "<value>.<hex signature>".
// It is used for values round-tripped through the browser, such as the OAuth
// state cookie.
func SignValue(value, hashKey string) string {
	return value + "." + HashString(value, hashKey)
}

// VerifySignedValue checks a value produced by [SignValue] and returns the
// original value. ok is false when the signature is missing or does not match.
func VerifySignedValue(signed, hashKey string) (string, bool) {
	i := strings.LastIndexByte(signed, '.')
	if i <= 0 {
		return "", false
	}

	value, sig := signed[:i], signed[i+1:]
	got, err := hex.DecodeString(sig)
	if err != nil {
		return "", false
	}

	if !hmac.Equal(got, hashString([]byte(value), hashKey)) {
		return "", false
	}

	return value, true
}
