package config

import (
	"os"
	"path/filepath"
	"time"
)

const sessionFileName = ".go-pass-guard-session.json"

func defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      "go-pass-guard",
			TokenDuration:    24 * time.Hour,
			OperationTimeout: 10 * time.Second,
			PendingTTL:       5 * time.Minute,
		},
		Storage: Storage{
			DB: DB{Driver: DriverMemory},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Adapter: Adapter{
			ServerAddress:  "http://localhost:8080",
			RequestTimeout: 15 * time.Second,
			SessionFile:    defaultSessionFile(),
			FederatedMode:  FederatedModePopup,
			PollInterval:   2 * time.Second,
		},
		Workers: Workers{
			EvictInterval: time.Minute,
		},
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return sessionFileName
	}
	return filepath.Join(home, sessionFileName)
}
