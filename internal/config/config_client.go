package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// ServerAddress is the base URL of the server.
	ServerAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// PollInterval is the delay between redirect-result polls.
	PollInterval time.Duration
}

// ClientSession holds the local session persistence settings.
type ClientSession struct {
	// File is the path of the JSON session file.
	File string
	// FederatedMode is popup or redirect.
	FederatedMode string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport settings.
	Adapter ClientAdapter
	// Session contains local session settings.
	Session ClientSession
	// OperationTimeout bounds every client operation.
	OperationTimeout time.Duration
	// Args are the positional arguments left after flag parsing: the command
	// and its parameters.
	Args []string
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config from env, args and JSON, maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig(args []string) (*ClientConfig, error) {
	b := newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults()

	cfg, err := b.build()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerAddress:  cfg.Adapter.ServerAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			PollInterval:   cfg.Adapter.PollInterval,
		},
		Session: ClientSession{
			File:          cfg.Adapter.SessionFile,
			FederatedMode: cfg.Adapter.FederatedMode,
		},
		OperationTimeout: cfg.App.OperationTimeout,
		Args:             b.rest,
	}

	return clientCfg, clientCfg.validate()
}
