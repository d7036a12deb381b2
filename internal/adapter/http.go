package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the REST implementation of [ServerAdapter].
// It normalises the server address and applies the request timeout.
func NewHTTPServerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.ServerAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter server address: %w", err)
	}

	return &httpServerAdapter{
		client:  utils.NewHTTPClient(baseURL, cfg.RequestTimeout),
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// SignUpWithPassword creates a password owner through
// POST /api/auth/password/signup and returns the issued principal token.
func (h *httpServerAdapter) SignUpWithPassword(ctx context.Context, req models.SignUpRequest) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&auth).
		Post("/api/auth/password/signup")
	if err != nil {
		return models.AuthResponse{}, mapTransportError("sign up", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return models.AuthResponse{}, err
	}

	return auth, nil
}

// LogInWithPassword exchanges a login key and secret for a principal token.
// A 401 here always means bad credentials.
func (h *httpServerAdapter) LogInWithPassword(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		SetResult(&auth).
		Post("/api/auth/password/login")
	if err != nil {
		return models.AuthResponse{}, mapTransportError("log in", err)
	}
	if err = mapHTTPError(resp, map[int]error{http.StatusUnauthorized: service.ErrInvalidCredentials}); err != nil {
		return models.AuthResponse{}, err
	}

	return auth, nil
}

func (h *httpServerAdapter) FederatedStartURL(provider models.Provider, mode, nonce, callback string) string {
	q := url.Values{}
	if mode != "" {
		q.Set("mode", mode)
	}
	if nonce != "" {
		q.Set("nonce", nonce)
	}
	if callback != "" {
		q.Set("callback", callback)
	}

	u := h.baseURL + "/api/auth/" + url.PathEscape(string(provider)) + "/start"
	if encoded := q.Encode(); encoded != "" {
		u += "?" + encoded
	}
	return u
}

func (h *httpServerAdapter) RedirectResult(ctx context.Context, nonce string) (*models.AuthResponse, error) {
	var auth models.AuthResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("nonce", nonce).
		SetResult(&auth).
		Get("/api/auth/redirect-result")
	if err != nil {
		return nil, mapTransportError("redirect result", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return nil, err
	}
	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}

	return &auth, nil
}

// SignUpOwner creates the owner record of the principal behind the current
// token.
func (h *httpServerAdapter) SignUpOwner(ctx context.Context, avatarURL string) (models.Owner, error) {
	var owner models.Owner

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"avatar_url": avatarURL}).
		SetResult(&owner).
		Post("/api/owners")
	if err != nil {
		return models.Owner{}, mapTransportError("sign up owner", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return models.Owner{}, err
	}

	return owner, nil
}

// CurrentOwner resolves the owner of the principal behind the current token.
// A 404 means the principal has no owner record yet.
func (h *httpServerAdapter) CurrentOwner(ctx context.Context) (models.Owner, error) {
	var owner models.Owner

	resp, err := h.authedRequest(ctx).
		SetResult(&owner).
		Get("/api/owners/me")
	if err != nil {
		return models.Owner{}, mapTransportError("current owner", err)
	}
	if err = mapHTTPError(resp, map[int]error{http.StatusNotFound: service.ErrOwnerNotFound}); err != nil {
		return models.Owner{}, err
	}

	return owner, nil
}

func (h *httpServerAdapter) ListEntries(ctx context.Context, query string) ([]models.CredentialEntry, error) {
	var entries []models.CredentialEntry

	req := h.authedRequest(ctx).SetResult(&entries)
	if query != "" {
		req.SetQueryParam("q", query)
	}

	resp, err := req.Get("/api/entries")
	if err != nil {
		return nil, mapTransportError("list entries", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return nil, err
	}

	return entries, nil
}

func (h *httpServerAdapter) AddEntry(ctx context.Context, in models.EntryInput) (models.CredentialEntry, error) {
	var entry models.CredentialEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		SetResult(&entry).
		Post("/api/entries")
	if err != nil {
		return models.CredentialEntry{}, mapTransportError("add entry", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return models.CredentialEntry{}, err
	}

	return entry, nil
}

func (h *httpServerAdapter) GetEntry(ctx context.Context, entryID string) (models.CredentialEntry, error) {
	var entry models.CredentialEntry

	resp, err := h.authedRequest(ctx).
		SetPathParam("entryID", entryID).
		SetResult(&entry).
		Get("/api/entries/{entryID}")
	if err != nil {
		return models.CredentialEntry{}, mapTransportError("get entry", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return models.CredentialEntry{}, err
	}

	return entry, nil
}

func (h *httpServerAdapter) UpdateEntry(ctx context.Context, entryID string, in models.EntryInput) (models.CredentialEntry, error) {
	var entry models.CredentialEntry

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetPathParam("entryID", entryID).
		SetBody(in).
		SetResult(&entry).
		Put("/api/entries/{entryID}")
	if err != nil {
		return models.CredentialEntry{}, mapTransportError("update entry", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return models.CredentialEntry{}, err
	}

	return entry, nil
}

func (h *httpServerAdapter) DeleteEntry(ctx context.Context, entryID string) error {
	resp, err := h.authedRequest(ctx).
		SetPathParam("entryID", entryID).
		Delete("/api/entries/{entryID}")
	if err != nil {
		return mapTransportError("delete entry", err)
	}

	return mapHTTPError(resp, nil)
}

func (h *httpServerAdapter) Version(ctx context.Context) (string, error) {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/version")
	if err != nil {
		return "", mapTransportError("version", err)
	}
	if err = mapHTTPError(resp, nil); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}
