package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-guard/internal/app"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"github.com/MKhiriev/go-pass-guard/models"
	"github.com/go-chi/chi/v5"
)

// Legacy routes keep the historical wire format: {message, data} envelopes
// and only 400, 404 and 500 as error statuses.

func legacyStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, ErrInvalidJSON):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeLegacyError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status := legacyStatus(err)
	logger.FromRequest(r).Err(err).Str("func", funcName).Int("status", status).Send()

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = app.MsgInternalServerError
	}
	utils.WriteJSON(w, models.MessageResponse{Message: msg}, status)
}

func (h *Handler) legacyAdd(w http.ResponseWriter, r *http.Request) {
	var in models.LegacyEntry
	if err := utils.ReadJSON(r, &in); err != nil {
		writeLegacyError(w, r, "*Handler.legacyAdd", ErrInvalidJSON)
		return
	}

	entry, err := h.services.LegacyService.Add(r.Context(), in.Input())
	if err != nil {
		writeLegacyError(w, r, "*Handler.legacyAdd", err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgEntrySaved, Data: models.NewLegacyEntry(entry)}, http.StatusCreated)
}

func (h *Handler) legacyList(w http.ResponseWriter, r *http.Request) {
	entries, err := h.services.LegacyService.List(r.Context())
	if err != nil {
		writeLegacyError(w, r, "*Handler.legacyList", err)
		return
	}

	out := make([]models.LegacyEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, models.NewLegacyEntry(e))
	}
	utils.WriteJSON(w, out, http.StatusOK)
}

func (h *Handler) legacyGet(w http.ResponseWriter, r *http.Request) {
	entry, err := h.services.LegacyService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLegacyError(w, r, "*Handler.legacyGet", err)
		return
	}

	utils.WriteJSON(w, models.NewLegacyEntry(entry), http.StatusOK)
}

func (h *Handler) legacyUpdate(w http.ResponseWriter, r *http.Request) {
	var in models.LegacyEntry
	if err := utils.ReadJSON(r, &in); err != nil {
		writeLegacyError(w, r, "*Handler.legacyUpdate", ErrInvalidJSON)
		return
	}

	entry, err := h.services.LegacyService.Update(r.Context(), chi.URLParam(r, "id"), in.Input())
	if err != nil {
		writeLegacyError(w, r, "*Handler.legacyUpdate", err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgSuccess, Data: models.NewLegacyEntry(entry)}, http.StatusOK)
}

func (h *Handler) legacyDelete(w http.ResponseWriter, r *http.Request) {
	var req models.LegacyDeleteRequest
	if err := utils.ReadJSON(r, &req); err != nil {
		writeLegacyError(w, r, "*Handler.legacyDelete", ErrInvalidJSON)
		return
	}

	if err := h.services.LegacyService.Delete(r.Context(), req.EntryID()); err != nil {
		writeLegacyError(w, r, "*Handler.legacyDelete", err)
		return
	}

	utils.WriteJSON(w, models.MessageResponse{Message: app.MsgEntryDeleted}, http.StatusOK)
}
