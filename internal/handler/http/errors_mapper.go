package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-pass-guard/internal/app"
	"github.com/MKhiriev/go-pass-guard/internal/identity"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
)

type errorStatus struct {
	target error
	status int
	reason string
}

// errorStatuses is checked in order, the first match wins.
var errorStatuses = []errorStatus{
	{service.ErrTimeout, http.StatusGatewayTimeout, app.MsgTimeout},
	{identity.ErrProviderNotSupported, http.StatusBadRequest, app.MsgProviderNotSupported},
	{service.ErrValidation, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidJSON, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrInvalidMode, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrCallbackNotAllowed, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{ErrMissingNonce, http.StatusBadRequest, app.MsgInvalidDataProvided},
	{service.ErrDuplicateOwner, http.StatusConflict, app.MsgOwnerAlreadyExists},
	{service.ErrOwnerNotFound, http.StatusNotFound, app.MsgOwnerNotFound},
	{service.ErrNotFound, http.StatusNotFound, app.MsgEntryNotFound},
	{service.ErrMissingIdentityAttribute, http.StatusUnprocessableEntity, app.MsgMissingIdentityAttribute},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, app.MsgInvalidLoginSecret},
	{identity.ErrInvalidState, http.StatusUnauthorized, app.MsgInvalidOAuthState},
	{service.ErrUnauthorized, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrNoPrincipalInContext, http.StatusUnauthorized, app.MsgTokenIsExpiredOrInvalid},
	{ErrProviderDeniedLogin, http.StatusUnauthorized, app.MsgProviderFailed},
	{service.ErrProvider, http.StatusBadGateway, app.MsgProviderFailed},
}

func classifyError(err error) (int, string) {
	for _, es := range errorStatuses {
		if errors.Is(err, es.target) {
			return es.status, es.reason
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}

func statusFromError(err error) int {
	status, _ := classifyError(err)
	return status
}

// errorResponse carries the error text and a stable reason clients can
// match on.
type errorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"`
}

// writeError logs err and answers with its mapped status. Internal errors
// are reported with the generic status text only.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	status, reason := classifyError(err)

	log := logger.FromRequest(r)
	event := log.Warn()
	if status >= http.StatusInternalServerError {
		event = log.Error()
	}
	event.Err(err).Str("func", funcName).Int("status", status).Send()

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	utils.WriteJSON(w, errorResponse{Error: msg, Reason: reason}, status)
}
