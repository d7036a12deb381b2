package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-pass-guard/internal/utils"
)

type signUpOwnerRequest struct {
	AvatarURL string `json:"avatar_url"`
}

// signUpOwner creates the owner record of the federated principal carried
// by the token.
func (h *Handler) signUpOwner(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.signUpOwner", err)
		return
	}

	var req signUpOwnerRequest
	if err := utils.ReadJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, "*Handler.signUpOwner", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}
	if req.AvatarURL != "" {
		principal.AvatarURL = req.AvatarURL
	}

	owner, err := h.services.IdentityService.SignUpPrincipal(r.Context(), principal)
	if err != nil {
		writeError(w, r, "*Handler.signUpOwner", err)
		return
	}

	utils.WriteJSON(w, owner, http.StatusCreated)
}

// currentOwner reconciles the token principal with its owner record.
func (h *Handler) currentOwner(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		writeError(w, r, "*Handler.currentOwner", err)
		return
	}

	owner, err := h.services.IdentityService.Reconcile(r.Context(), principal)
	if err != nil {
		writeError(w, r, "*Handler.currentOwner", err)
		return
	}

	utils.WriteJSON(w, owner, http.StatusOK)
}
