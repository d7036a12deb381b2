// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/app"
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.ClientAdapter{ServerAddress: serverURL, RequestTimeout: 2 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

var testAuth = models.AuthResponse{
	Token:     "header.payload.signature",
	Principal: models.Principal{UID: "u-1", Email: "alice@example.com", Provider: models.ProviderPassword},
}

// ── password auth ───────────────────────────────────────────────────────────

func TestSignUpWithPassword_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/password/signup", r.URL.Path)

		var req models.SignUpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.LoginKey)
		assert.Equal(t, "hunter2", req.Secret)

		writeJSON(w, http.StatusCreated, testAuth)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.SignUpWithPassword(context.Background(), models.SignUpRequest{LoginKey: "alice@example.com", Secret: "hunter2"})

	require.NoError(t, err)
	assert.Equal(t, testAuth, got)
}

func TestSignUpWithPassword_Duplicate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeErr(w, http.StatusConflict, "duplicate owner: alice@example.com")
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.SignUpWithPassword(context.Background(), models.SignUpRequest{LoginKey: "alice@example.com"})

	require.ErrorIs(t, err, service.ErrDuplicateOwner)
	assert.Contains(t, err.Error(), "duplicate owner: alice@example.com")
}

func TestLogInWithPassword(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "ok", status: http.StatusOK},
		{name: "bad credentials", status: http.StatusUnauthorized, wantErr: service.ErrInvalidCredentials},
		{name: "validation", status: http.StatusBadRequest, wantErr: service.ErrValidation},
		{name: "server failure", status: http.StatusInternalServerError, wantErr: service.ErrStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/password/login", r.URL.Path)
				if tt.status != http.StatusOK {
					writeErr(w, tt.status, http.StatusText(tt.status))
					return
				}
				writeJSON(w, http.StatusOK, testAuth)
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			got, err := a.LogInWithPassword(context.Background(), models.Credentials{LoginKey: "alice@example.com", Secret: "x"})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testAuth.Token, got.Token)
		})
	}
}

// ── federated ───────────────────────────────────────────────────────────────

func TestFederatedStartURL(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:8080/")

	got := a.FederatedStartURL(models.ProviderGitHub, "redirect", "n-1", "")
	assert.Equal(t, "http://localhost:8080/api/auth/github/start?mode=redirect&nonce=n-1", got)

	got = a.FederatedStartURL(models.ProviderGoogle, "", "", "")
	assert.Equal(t, "http://localhost:8080/api/auth/google/start", got)
}

func TestRedirectResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/redirect-result", r.URL.Path)
		switch r.URL.Query().Get("nonce") {
		case "ready":
			writeJSON(w, http.StatusOK, testAuth)
		case "":
			writeErr(w, http.StatusBadRequest, "missing nonce")
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	got, err := a.RedirectResult(context.Background(), "ready")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testAuth.Principal, got.Principal)

	got, err = a.RedirectResult(context.Background(), "not-yet")
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = a.RedirectResult(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrValidation)
}

// ── owners ──────────────────────────────────────────────────────────────────

func TestCurrentOwner(t *testing.T) {
	owner := models.Owner{OwnerID: "o-1", LoginKey: "alice@example.com", PrincipalID: "u-1"}

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "found", token: "found"},
		{name: "no owner record", token: "missing", wantErr: service.ErrOwnerNotFound},
		{name: "no token", wantErr: service.ErrUnauthorized},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/owners/me", r.URL.Path)
		switch r.Header.Get("Authorization") {
		case "Bearer found":
			writeJSON(w, http.StatusOK, owner)
		case "Bearer missing":
			writeErr(w, http.StatusNotFound, "owner not found")
		default:
			writeErr(w, http.StatusUnauthorized, "empty authorization header")
		}
	}))
	defer srv.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAdapter(t, srv.URL)
			a.SetToken(tt.token)

			got, err := a.CurrentOwner(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, owner, got)
		})
	}
}

func TestSignUpOwner(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/owners", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["avatar_url"] == "" {
			writeErr(w, http.StatusUnprocessableEntity, "missing identity attribute")
			return
		}
		writeJSON(w, http.StatusCreated, models.Owner{OwnerID: "o-2", AvatarURL: body["avatar_url"]})
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")

	got, err := a.SignUpOwner(context.Background(), "https://img/a.png")
	require.NoError(t, err)
	assert.Equal(t, "o-2", got.OwnerID)

	_, err = a.SignUpOwner(context.Background(), "")
	assert.ErrorIs(t, err, service.ErrMissingIdentityAttribute)
}

// ── entries ─────────────────────────────────────────────────────────────────

func TestEntries_CRUD(t *testing.T) {
	entry := models.CredentialEntry{EntryID: "e-1", Website: "example.com", Username: "alice", Password: "pw"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/entries", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "exam", r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, []models.CredentialEntry{entry})
	})
	mux.HandleFunc("POST /api/entries", func(w http.ResponseWriter, r *http.Request) {
		var in models.EntryInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusCreated, in.Apply(models.CredentialEntry{EntryID: "e-1"}))
	})
	mux.HandleFunc("GET /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "e-1" {
			writeErr(w, http.StatusNotFound, "entry not found")
			return
		}
		writeJSON(w, http.StatusOK, entry)
	})
	mux.HandleFunc("PUT /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		var in models.EntryInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		writeJSON(w, http.StatusOK, in.Apply(entry))
	})
	mux.HandleFunc("DELETE /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("tok")
	ctx := context.Background()

	list, err := a.ListEntries(ctx, "exam")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	added, err := a.AddEntry(ctx, models.EntryInput{Website: "example.com", Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "e-1", added.EntryID)
	assert.Equal(t, "pw", added.Password)

	got, err := a.GetEntry(ctx, "e-1")
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	_, err = a.GetEntry(ctx, "nope")
	assert.ErrorIs(t, err, service.ErrNotFound)

	updated, err := a.UpdateEntry(ctx, "e-1", models.EntryInput{Website: "example.org", Username: "alice", Password: "pw2"})
	require.NoError(t, err)
	assert.Equal(t, "example.org", updated.Website)

	assert.NoError(t, a.DeleteEntry(ctx, "e-1"))
}

func TestVersion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/version", r.URL.Path)
		_, _ = w.Write([]byte("v1.2.3\n"))
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "v1.2.3", got)
}

func TestTimeoutIsMapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := a.Version(ctx)
	assert.ErrorIs(t, err, service.ErrTimeout)
}

func TestReasonTakesPrecedenceOverStatus(t *testing.T) {
	tests := []struct {
		name    string
		reason  string
		wantErr error
		notErr  error
	}{
		{name: "owner missing", reason: app.MsgOwnerNotFound, wantErr: service.ErrOwnerNotFound, notErr: service.ErrNotFound},
		{name: "entry missing", reason: app.MsgEntryNotFound, wantErr: service.ErrNotFound, notErr: service.ErrOwnerNotFound},
		{name: "no reason", wantErr: service.ErrNotFound, notErr: service.ErrOwnerNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found", "reason": tt.reason})
			}))
			defer srv.Close()

			a := newTestAdapter(t, srv.URL)
			a.SetToken("t")

			_, err := a.GetEntry(context.Background(), "e-1")
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NotErrorIs(t, err, tt.notErr)
		})
	}
}

func TestUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Version(context.Background())
	require.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "418")
}

// ── normalizeBaseURL ─────────────────────────────────────────────────────────

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid http", "http://localhost:8080", "http://localhost:8080", false},
		{"no scheme", "localhost:8080", "http://localhost:8080", false},
		{"trailing slash", "http://localhost:8080/", "http://localhost:8080", false},
		{"empty", "", "", true},
		{"no host", "http://", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.input)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
