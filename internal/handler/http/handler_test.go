// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/identity"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

// stubProvider is a federated provider that answers every code with principal.
type stubProvider struct {
	name      models.Provider
	principal models.Principal
	err       error
}

func (s *stubProvider) Name() models.Provider { return s.name }

func (s *stubProvider) AuthCodeURL(state string) string {
	return "https://consent.example.com/auth?state=" + url.QueryEscape(state)
}

func (s *stubProvider) Authenticate(context.Context, models.Credentials) (models.Principal, error) {
	return s.principal, s.err
}

type testEnv struct {
	router   *chi.Mux
	services *service.Services
	google   *stubProvider
}

// newTestEnv wires real services over the in-memory store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	nop := logger.Nop()
	mem := store.NewMemoryStore(utils.NewUUIDGenerator())
	appCfg := config.App{
		TokenSignKey:  "sign-key",
		TokenIssuer:   "test",
		TokenDuration: time.Hour,
		Version:       "1.2.3",
	}

	appInfo, err := service.NewAppInfoService(appCfg)
	require.NoError(t, err)

	identityService := service.NewIdentityService(mem, crypto.NewSecretHasher(bcrypt.MinCost), utils.NewUUIDGenerator(), time.Second, nop)
	services := &service.Services{
		IdentityService: identityService,
		CredentialService: service.NewCredentialValidationService().
			Wrap(service.NewCredentialService(mem, mem, time.Second, nop)),
		LegacyService:  service.NewLegacyService(mem, time.Second, nop),
		AuthService:    service.NewAuthService(appCfg, nop),
		AppInfoService: appInfo,
	}

	google := &stubProvider{name: models.ProviderGoogle, principal: models.Principal{
		UID: "g-1", Email: "fed@example.com", DisplayName: "Fed", Provider: models.ProviderGoogle,
	}}
	authenticator := identity.NewAuthenticator(
		[]identity.Provider{identity.NewPasswordProvider(identityService), google},
		services.AuthService, identity.NewPendingStore(time.Minute), "state-key", time.Second, nop,
	)

	h := NewHandler(services, authenticator, config.Server{
		PublicURL:      "https://vault.example.com",
		RequestTimeout: 5 * time.Second,
	}, nop)

	return &testEnv{router: h.Init(), services: services, google: google}
}

// do sends a request through the router. body is JSON-encoded unless it is
// already a string.
func (e *testEnv) do(t *testing.T, method, target, token string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signUp registers a password owner and returns its token.
func (e *testEnv) signUp(t *testing.T, loginKey string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/auth/password/signup", "", models.SignUpRequest{LoginKey: loginKey, Secret: "s3cret"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[models.AuthResponse](t, rec).Token
}

// federatedToken runs a full google flow and returns the issued token.
func (e *testEnv) federatedToken(t *testing.T) string {
	t.Helper()

	start := e.do(t, http.MethodGet, "/api/auth/google/start", "", nil)
	require.Equal(t, http.StatusFound, start.Code)
	state := stateFromLocation(t, start)

	rec := e.do(t, http.MethodGet, "/api/auth/google/callback?code=c&state="+url.QueryEscape(state), "", nil, stateCookie(t, start))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[models.AuthResponse](t, rec).Token
}

func stateFromLocation(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	u, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	return u.Query().Get("state")
}

func stateCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == stateCookieName {
			return c
		}
	}
	t.Fatal("state cookie not set")
	return nil
}
