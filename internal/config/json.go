package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

type oauthProviderJSON struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	CallbackURL  string `json:"callback_url"`
}

// StructuredJSONConfig is the on-disk shape of the JSON configuration file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		OperationTimeout Duration `json:"operation_timeout"`
		PendingTTL       Duration `json:"pending_ttl"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Datastore struct {
			ProjectID       string `json:"project_id"`
			Namespace       string `json:"namespace"`
			CredentialsFile string `json:"credentials_file"`
		} `json:"datastore,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
		PublicURL      string   `json:"public_url"`
	} `json:"server,omitempty"`

	Providers struct {
		Google oauthProviderJSON `json:"google"`
		GitHub oauthProviderJSON `json:"github"`
	} `json:"providers,omitempty"`

	Adapter struct {
		ServerAddress  string   `json:"server_address"`
		RequestTimeout Duration `json:"request_timeout"`
		SessionFile    string   `json:"session_file"`
		FederatedMode  string   `json:"federated_mode"`
		PollInterval   Duration `json:"poll_interval"`
	} `json:"adapter,omitempty"`

	Workers struct {
		EvictInterval Duration `json:"evict_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			OperationTimeout: time.Duration(jsonCfg.App.OperationTimeout),
			PendingTTL:       time.Duration(jsonCfg.App.PendingTTL),
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Datastore: Datastore{
				ProjectID:       jsonCfg.Storage.Datastore.ProjectID,
				Namespace:       jsonCfg.Storage.Datastore.Namespace,
				CredentialsFile: jsonCfg.Storage.Datastore.CredentialsFile,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			PublicURL:      jsonCfg.Server.PublicURL,
		},
		Providers: Providers{
			Google: OAuthProvider(jsonCfg.Providers.Google),
			GitHub: OAuthProvider(jsonCfg.Providers.GitHub),
		},
		Adapter: Adapter{
			ServerAddress:  jsonCfg.Adapter.ServerAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			SessionFile:    jsonCfg.Adapter.SessionFile,
			FederatedMode:  jsonCfg.Adapter.FederatedMode,
			PollInterval:   time.Duration(jsonCfg.Adapter.PollInterval),
		},
		Workers: Workers{
			EvictInterval: time.Duration(jsonCfg.Workers.EvictInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
