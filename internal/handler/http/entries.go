package http

import (
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/go-chi/chi/v5"
)

// ownerID resolves the owner of the request principal. It is looked up on
// every request.
func (h *Handler) ownerID(r *http.Request) (string, error) {
	principal, err := principalFromRequest(r)
	if err != nil {
		return "", err
	}
	return h.services.CredentialService.ResolveOwner(r.Context(), principal)
}

func (h *Handler) listEntries(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.ownerID(r)
	if err != nil {
		writeError(w, r, "*Handler.listEntries", err)
		return
	}

	entries, err := h.services.CredentialService.List(r.Context(), ownerID)
	if err != nil {
		writeError(w, r, "*Handler.listEntries", err)
		return
	}

	utils.WriteJSON(w, models.FilterEntries(entries, r.URL.Query().Get("q")), http.StatusOK)
}

func (h *Handler) addEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.ownerID(r)
	if err != nil {
		writeError(w, r, "*Handler.addEntry", err)
		return
	}

	var in models.EntryInput
	if err := utils.ReadJSON(r, &in); err != nil {
		writeError(w, r, "*Handler.addEntry", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	entry, err := h.services.CredentialService.Add(r.Context(), ownerID, in)
	if err != nil {
		writeError(w, r, "*Handler.addEntry", err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusCreated)
}

func (h *Handler) getEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.ownerID(r)
	if err != nil {
		writeError(w, r, "*Handler.getEntry", err)
		return
	}

	entry, err := h.services.CredentialService.Get(r.Context(), ownerID, chi.URLParam(r, "entryID"))
	if err != nil {
		writeError(w, r, "*Handler.getEntry", err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) updateEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.ownerID(r)
	if err != nil {
		writeError(w, r, "*Handler.updateEntry", err)
		return
	}

	var in models.EntryInput
	if err := utils.ReadJSON(r, &in); err != nil {
		writeError(w, r, "*Handler.updateEntry", fmt.Errorf("%w: %w", ErrInvalidJSON, err))
		return
	}

	entry, err := h.services.CredentialService.Update(r.Context(), ownerID, chi.URLParam(r, "entryID"), in)
	if err != nil {
		writeError(w, r, "*Handler.updateEntry", err)
		return
	}

	utils.WriteJSON(w, entry, http.StatusOK)
}

func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	ownerID, err := h.ownerID(r)
	if err != nil {
		writeError(w, r, "*Handler.deleteEntry", err)
		return
	}

	if err := h.services.CredentialService.Delete(r.Context(), ownerID, chi.URLParam(r, "entryID")); err != nil {
		writeError(w, r, "*Handler.deleteEntry", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
