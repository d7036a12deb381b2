package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-pass-guard/internal/app"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/go-resty/resty/v2"
)

// statusErrors reverses the server's error to status mapping.
var statusErrors = map[int]error{
	http.StatusBadRequest:          service.ErrValidation,
	http.StatusUnauthorized:        service.ErrUnauthorized,
	http.StatusNotFound:            service.ErrNotFound,
	http.StatusConflict:            service.ErrDuplicateOwner,
	http.StatusUnprocessableEntity: service.ErrMissingIdentityAttribute,
	http.StatusBadGateway:          service.ErrProvider,
	http.StatusGatewayTimeout:      service.ErrTimeout,
	http.StatusInternalServerError: service.ErrStore,
}

// reasonErrors is consulted before the status code. Reasons tell apart
// errors that share a status, such as a missing owner and a missing entry.
var reasonErrors = map[string]error{
	app.MsgInvalidDataProvided:      service.ErrValidation,
	app.MsgProviderNotSupported:     service.ErrValidation,
	app.MsgInvalidLoginSecret:       service.ErrInvalidCredentials,
	app.MsgTokenIsExpiredOrInvalid:  service.ErrUnauthorized,
	app.MsgInvalidOAuthState:        service.ErrUnauthorized,
	app.MsgOwnerAlreadyExists:       service.ErrDuplicateOwner,
	app.MsgOwnerNotFound:            service.ErrOwnerNotFound,
	app.MsgEntryNotFound:            service.ErrNotFound,
	app.MsgMissingIdentityAttribute: service.ErrMissingIdentityAttribute,
	app.MsgProviderFailed:           service.ErrProvider,
	app.MsgTimeout:                  service.ErrTimeout,
	app.MsgInternalServerError:      service.ErrStore,
}

type errorBody struct {
	Error  string `json:"error"`
	Reason string `json:"reason"`
}

// mapHTTPError converts a non-2xx response into an error of the service
// taxonomy. A known reason wins. Otherwise overrides replace the default
// sentinel for a status where the endpoint makes its meaning more precise.
func mapHTTPError(resp *resty.Response, overrides map[int]error) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg, reason := responseMessage(resp)

	if target, ok := reasonErrors[reason]; ok {
		return fmt.Errorf("%w: %s", target, msg)
	}
	if target, ok := overrides[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", target, msg)
	}
	if target, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", target, msg)
	}
	return fmt.Errorf("%w: http %d: %s", ErrUnexpectedStatus, resp.StatusCode(), msg)
}

func responseMessage(resp *resty.Response) (msg, reason string) {
	raw := resp.Body()
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error, body.Reason
	}
	if text := strings.TrimSpace(string(raw)); text != "" {
		return text, ""
	}
	return http.StatusText(resp.StatusCode()), ""
}

// mapTransportError marks deadline failures as timeouts.
func mapTransportError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %w", op, service.ErrTimeout, err)
	}
	return fmt.Errorf("%s request: %w", op, err)
}
