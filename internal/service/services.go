package service

import (
	"github.com/MKhiriev/go-pass-guard/internal/config"
	"github.com/MKhiriev/go-pass-guard/internal/crypto"
	"github.com/MKhiriev/go-pass-guard/internal/logger"
	"github.com/MKhiriev/go-pass-guard/internal/store"
	"github.com/MKhiriev/go-pass-guard/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

type Services struct {
	IdentityService   IdentityService
	CredentialService CredentialService
	LegacyService     LegacyService
	AuthService       AuthService
	AppInfoService    AppInfoService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App)
	if err != nil {
		return nil, err
	}

	timeout := cfg.App.OperationTimeout
	credentials := NewCredentialValidationService().
		Wrap(NewCredentialService(storages.Owners, storages.Entries, timeout, logger))

	return &Services{
		IdentityService:   NewIdentityService(storages.Owners, crypto.NewSecretHasher(bcrypt.DefaultCost), utils.NewUUIDGenerator(), timeout, logger),
		CredentialService: credentials,
		LegacyService:     NewLegacyService(storages.Entries, timeout, logger),
		AuthService:       NewAuthService(cfg.App, logger),
		AppInfoService:    appInfo,
	}, nil
}
