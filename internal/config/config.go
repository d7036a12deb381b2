// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-pass-guard server and client. It aggregates all sub-configurations and
// is populated by merging values from environment variables, command-line
// flags, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters, operation timeouts and the version.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the persistence backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP and
	// gRPC servers.
	Server Server `envPrefix:"SERVER_"`

	// Providers holds OAuth2 client settings of the federated identity
	// providers.
	Providers Providers `envPrefix:"PROVIDERS_"`

	// Adapter holds the client-side settings used to reach the server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds intervals of background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// TokenSignKey signs and verifies principal tokens (HS256).
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim of every issued token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration specifies how long a principal token remains valid.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// OperationTimeout bounds every store or provider round trip.
	// Env: APP_OPERATION_TIMEOUT
	OperationTimeout time.Duration `env:"OPERATION_TIMEOUT"`

	// PendingTTL is how long a federated flow state or an unclaimed redirect
	// result is kept by the server.
	// Env: APP_PENDING_TTL
	PendingTTL time.Duration `env:"PENDING_TTL"`

	// Version is exposed via /api/version.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all storage backends.
type Storage struct {
	// DB holds the relational database connection settings and the backend
	// selector.
	DB DB `envPrefix:"DB_"`

	// Datastore holds Cloud Datastore settings.
	Datastore Datastore `envPrefix:"DATASTORE_"`
}

// Storage drivers accepted by [DB.Driver].
const (
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
	DriverDatastore = "datastore"
	DriverMemory    = "memory"
)

// DB holds connection settings for the relational database backend.
type DB struct {
	// Driver selects the backend: postgres, sqlite, datastore or memory.
	// Env: STORAGE_DB_DRIVER
	Driver string `env:"DRIVER"`

	// DSN is the PostgreSQL connection string or the SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Datastore holds Cloud Datastore settings. The emulator is picked up by the
// client library from DATASTORE_EMULATOR_HOST.
type Datastore struct {
	// Env: STORAGE_DATASTORE_PROJECT_ID
	ProjectID string `env:"PROJECT_ID"`
	// Env: STORAGE_DATASTORE_NAMESPACE
	Namespace string `env:"NAMESPACE"`
	// CredentialsFile is an optional service account key file.
	// Env: STORAGE_DATASTORE_CREDENTIALS_FILE
	CredentialsFile string `env:"CREDENTIALS_FILE"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the gRPC health server. The gRPC
	// server is not started when empty.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout is the maximum duration of a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// PublicURL is the externally reachable base URL of the server, used to
	// build default OAuth2 callback URLs.
	// Env: SERVER_PUBLIC_URL
	PublicURL string `env:"PUBLIC_URL"`
}

// Providers holds the OAuth2 applications of the federated providers.
// A provider with an empty ClientID is disabled.
type Providers struct {
	Google OAuthProvider `envPrefix:"GOOGLE_"`
	GitHub OAuthProvider `envPrefix:"GITHUB_"`
}

// OAuthProvider is one OAuth2 application registration.
type OAuthProvider struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	CallbackURL  string `env:"CALLBACK_URL"`
}

// Enabled reports whether the provider is configured.
func (p OAuthProvider) Enabled() bool {
	return p.ClientID != ""
}

// Federated sign-in strategies accepted by [Adapter.FederatedMode].
const (
	FederatedModePopup    = "popup"
	FederatedModeRedirect = "redirect"
)

// Adapter holds the settings the client uses to reach the server.
type Adapter struct {
	// ServerAddress is the base URL of the server (e.g. "http://localhost:8080").
	// Env: ADAPTER_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout is the timeout of a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// SessionFile is where the client keeps its principal token between runs.
	// Env: ADAPTER_SESSION_FILE
	SessionFile string `env:"SESSION_FILE"`

	// FederatedMode is popup or redirect.
	// Env: ADAPTER_FEDERATED_MODE
	FederatedMode string `env:"FEDERATED_MODE"`

	// PollInterval is the delay between redirect-result polls in popup mode.
	// Env: ADAPTER_POLL_INTERVAL
	PollInterval time.Duration `env:"POLL_INTERVAL"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// EvictInterval is how often expired federated flow state is dropped.
	// Env: WORKERS_EVICT_INTERVAL
	EvictInterval time.Duration `env:"EVICT_INTERVAL"`
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (the first
// source that sets a field wins):
//  1. Environment variables
//  2. Command-line flags parsed from args
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
	if err != nil {
		return nil, err
	}

	return cfg, cfg.validate()
}
