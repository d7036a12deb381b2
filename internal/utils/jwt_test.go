package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPrincipal = models.Principal{
	UID:         "uid-1",
	Email:       "alice@example.com",
	DisplayName: "Alice",
	AvatarURL:   "https://avatars.example.com/a.png",
	Provider:    models.ProviderGitHub,
}

func TestGenerateJWTToken_Success(t *testing.T) {
	token, err := GenerateJWTToken("test-issuer", testPrincipal, time.Hour, "secret-key")
	require.NoError(t, err)

	assert.NotEmpty(t, token.SignedString)
	require.NotNil(t, token.Token)
	assert.Equal(t, "test-issuer", token.Issuer)
	assert.Equal(t, testPrincipal, token.Principal())
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	tests := []struct {
		name      string
		issuer    string
		principal models.Principal
		duration  time.Duration
		key       string
	}{
		{"empty issuer", "", testPrincipal, time.Hour, "key"},
		{"zero duration", "iss", testPrincipal, 0, "key"},
		{"empty key", "iss", testPrincipal, time.Hour, ""},
		{"empty uid", "iss", models.Principal{Email: "a@b.c"}, time.Hour, "key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateJWTToken(tt.issuer, tt.principal, tt.duration, tt.key)
			assert.Error(t, err)
		})
	}
}

func TestValidateAndParseJWTToken_Success(t *testing.T) {
	genToken, err := GenerateJWTToken("test-issuer", testPrincipal, 5*time.Minute, "secret-key")
	require.NoError(t, err)

	parsed, err := ValidateAndParseJWTToken(genToken.SignedString, "secret-key", "test-issuer")
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, parsed.Principal())
	assert.Equal(t, genToken.SignedString, parsed.String())
}

func TestValidateAndParseJWTToken_Failures(t *testing.T) {
	valid, err := GenerateJWTToken("real-issuer", testPrincipal, time.Hour, "key")
	require.NoError(t, err)
	expired, err := GenerateJWTToken("real-issuer", testPrincipal, -time.Second, "key")
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		key    string
		issuer string
	}{
		{name: "wrong key", token: valid.SignedString, key: "wrong", issuer: "real-issuer"},
		{name: "wrong issuer", token: valid.SignedString, key: "key", issuer: "fake-issuer"},
		{name: "expired", token: expired.SignedString, key: "key", issuer: "real-issuer"},
		{name: "garbage", token: "not.a.token", key: "key", issuer: "real-issuer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateAndParseJWTToken(tt.token, tt.key, tt.issuer)
			assert.Error(t, err)
		})
	}
}

func TestParseBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "lower case scheme", header: "bearer abc", want: "abc"},
		{name: "extra spaces", header: "  Bearer   abc  ", want: "abc"},
		{name: "empty", header: "", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
		{name: "basic scheme", header: "Basic abc", wantErr: true},
		{name: "too many parts", header: "Bearer a b", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearerToken(tt.header)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePrincipalUnverified(t *testing.T) {
	valid, err := GenerateJWTToken("iss", testPrincipal, time.Hour, "any-key")
	require.NoError(t, err)

	got, err := ParsePrincipalUnverified(valid.SignedString)
	require.NoError(t, err)
	assert.Equal(t, testPrincipal, got)

	expired, err := GenerateJWTToken("iss", testPrincipal, -time.Minute, "any-key")
	require.NoError(t, err)
	_, err = ParsePrincipalUnverified(expired.SignedString)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))

	_, err = ParsePrincipalUnverified("garbage")
	assert.Error(t, err)
}
