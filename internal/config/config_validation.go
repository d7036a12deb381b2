// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenIssuer == "" || cfg.App.TokenDuration <= 0 {
		return fmt.Errorf("%w: token sign key, issuer and duration are required", ErrInvalidAppConfigs)
	}

	if cfg.App.OperationTimeout <= 0 || cfg.App.PendingTTL <= 0 {
		return fmt.Errorf("%w: operation timeout and pending ttl must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: %s driver needs a DSN", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
		}
	case DriverDatastore:
		if cfg.Storage.Datastore.ProjectID == "" {
			return fmt.Errorf("%w: datastore driver needs a project id", ErrInvalidStorageConfigs)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("%w: unknown driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is required", ErrInvalidServerConfigs)
	}

	for name, p := range map[string]OAuthProvider{"google": cfg.Providers.Google, "github": cfg.Providers.GitHub} {
		if p.Enabled() && p.ClientSecret == "" {
			return fmt.Errorf("%w: %s client secret is required", ErrInvalidProviderConfigs, name)
		}
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if _, err := url.ParseRequestURI(cfg.Adapter.ServerAddress); err != nil || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Session.File == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Session.FederatedMode != FederatedModePopup && cfg.Session.FederatedMode != FederatedModeRedirect {
		return fmt.Errorf("%w: unknown federated mode %q", ErrInvalidAdapterConfigs, cfg.Session.FederatedMode)
	}

	if cfg.OperationTimeout <= 0 || cfg.Adapter.PollInterval <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}
