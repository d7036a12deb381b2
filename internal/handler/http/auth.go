package http

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/identity"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/internal/validators"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/go-chi/chi/v5"
)

const (
	stateCookieName   = "oauthstate"
	stateCookiePath   = "/api/auth"
	stateCookieMaxAge = 10 * time.Minute
)

func (h *Handler) passwordSignUp(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.SignUpRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, "*Handler.passwordSignUp", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if req.Secret == "" {
		writeError(w, r, "*Handler.passwordSignUp", fmt.Errorf("%w: %w", service.ErrValidation, validators.ErrEmptySecret))
		return
	}
	// password owners get a generated subject id
	req.PrincipalID = ""

	owner, err := h.services.IdentityService.SignUp(ctx, req)
	if err != nil {
		writeError(w, r, "*Handler.passwordSignUp", err)
		return
	}

	resp, err := h.authenticator.IssueFor(ctx, identity.PrincipalFromOwner(owner))
	if err != nil {
		writeError(w, r, "*Handler.passwordSignUp", err)
		return
	}

	logger.FromRequest(r).Info().Str("owner_id", owner.OwnerID).Msg("owner signed up with password")
	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handler) passwordLogIn(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := utils.ReadJSON(r, &creds); err != nil {
		writeError(w, r, "*Handler.passwordLogIn", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	resp, err := h.authenticator.PasswordLogIn(r.Context(), creds)
	if err != nil {
		writeError(w, r, "*Handler.passwordLogIn", err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// federatedStart redirects to the provider consent page and drops the
// signed state cookie the callback checks.
func (h *Handler) federatedStart(w http.ResponseWriter, r *http.Request) {
	provider := models.Provider(chi.URLParam(r, "provider"))
	query := r.URL.Query()

	mode := query.Get("mode")
	if mode == "" {
		mode = config.FederatedModePopup
	}
	if mode != config.FederatedModePopup && mode != config.FederatedModeRedirect {
		writeError(w, r, "*Handler.federatedStart", ErrInvalidMode)
		return
	}

	callback := query.Get("callback")
	if callback != "" && !h.callbackAllowed(callback) {
		writeError(w, r, "*Handler.federatedStart", fmt.Errorf("%w: %q", ErrCallbackNotAllowed, callback))
		return
	}

	authURL, stateCookie, err := h.authenticator.Start(r.Context(), provider, mode, query.Get("nonce"), callback)
	if err != nil {
		writeError(w, r, "*Handler.federatedStart", err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    stateCookie,
		Path:     stateCookiePath,
		MaxAge:   int(stateCookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, authURL, http.StatusFound)
}

// federatedCallback completes the flow. A flow started with a callback URL
// is sent back there carrying its nonce, otherwise the token is returned.
func (h *Handler) federatedCallback(w http.ResponseWriter, r *http.Request) {
	provider := models.Provider(chi.URLParam(r, "provider"))
	query := r.URL.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		writeError(w, r, "*Handler.federatedCallback", fmt.Errorf("%w: %s", ErrProviderDeniedLogin, providerErr))
		return
	}

	var stateCookie string
	if c, err := r.Cookie(stateCookieName); err == nil {
		stateCookie = c.Value
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookieName, Path: stateCookiePath, MaxAge: -1, HttpOnly: true})

	resp, flow, err := h.authenticator.Complete(r.Context(), provider, query.Get("state"), stateCookie, query.Get("code"))
	if err != nil {
		writeError(w, r, "*Handler.federatedCallback", err)
		return
	}

	logger.FromRequest(r).Info().
		Str("provider", string(provider)).
		Str("mode", flow.Mode).
		Msg("federated sign-in completed")

	if flow.Callback != "" {
		target, err := url.Parse(flow.Callback)
		if err == nil {
			q := target.Query()
			q.Set("nonce", flow.Nonce)
			target.RawQuery = q.Encode()
			http.Redirect(w, r, target.String(), http.StatusFound)
			return
		}
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) redirectResult(w http.ResponseWriter, r *http.Request) {
	nonce := r.URL.Query().Get("nonce")
	if nonce == "" {
		writeError(w, r, "*Handler.redirectResult", ErrMissingNonce)
		return
	}

	resp, ok := h.authenticator.RedirectResult(nonce)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// callbackAllowed accepts loopback callbacks and callbacks to the public
// URL host.
func (h *Handler) callbackAllowed(callback string) bool {
	u, err := url.Parse(callback)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}

	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	if ip := net.ParseIP(host); ip != nil && ip.IsLoopback() {
		return true
	}

	public, err := url.Parse(h.publicURL)
	if err != nil || public.Host == "" {
		return false
	}
	return u.Host == public.Host
}
