package http

import (
	"context"
	"time"

	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/identity"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/service"
	"github.com/MKhiriev/go-pass-guard/models"
)

// Authenticator is the part of [identity.Authenticator] used by the handlers.
type Authenticator interface {
	Start(ctx context.Context, name models.Provider, mode, nonce, callback string) (string, string, error)
	Complete(ctx context.Context, name models.Provider, state, stateCookie, code string) (models.AuthResponse, identity.Flow, error)
	PasswordLogIn(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	IssueFor(ctx context.Context, principal models.Principal) (models.AuthResponse, error)
	RedirectResult(nonce string) (models.AuthResponse, bool)
}

type Handler struct {
	services      *service.Services
	authenticator Authenticator

	publicURL      string
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, auth Authenticator, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		authenticator:  auth,
		publicURL:      cfg.PublicURL,
		requestTimeout: cfg.RequestTimeout,
		logger:         logger,
	}
}
