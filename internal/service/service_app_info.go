package service

import (
	"context"

	"github.com/MKhiriev/go-pass-guard/internal/config"
)

// staticAppInfo reports the version the server was started with.
type staticAppInfo string

// NewAppInfoService fails with [ErrVersionIsNotSpecified] when neither the
// config nor the build set a version.
func NewAppInfoService(cfg config.App) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	return staticAppInfo(cfg.Version), nil
}

func (v staticAppInfo) GetAppVersion(context.Context) string {
	return string(v)
}
