// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientApp holds client-side application settings derived from the shared
// structured config.
type ClientApp struct {
	// KeyStore is "keyring" or "file".
	KeyStore string
	// KeyFile is the backup path for the "file" key store.
	KeyFile string
	// Account names the keyring entry.
	Account string
	// ShareBaseURL is the origin used when building share links.
	ShareBaseURL string
	// VersionCheck enables conditional manifest writes.
	VersionCheck bool
	// TokenDuration is the lifetime of access tokens sent to the blob server.
	TokenDuration time.Duration
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the blob server base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// StorageConfig selects a blob backend and carries its location.
type StorageConfig struct {
	// Backend is one of the Backend* constants.
	Backend string
	// DSN is used by the sqlite and postgres backends.
	DSN string
	// Dir is used by the fs backend.
	Dir string
	// BoltPath is used by the bolt backend.
	BoltPath string
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// SyncInterval defines how often the watch worker refreshes the manifest.
	SyncInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains application-level client settings.
	App ClientApp
	// Adapter contains the blob server address and timeout.
	Adapter ClientAdapter
	// Storage selects where encrypted blobs are kept.
	Storage StorageConfig
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps the client-relevant fields of cfg without validating.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	return &ClientConfig{
		App: ClientApp{
			KeyStore:      cfg.App.KeyStore,
			KeyFile:       cfg.App.KeyFile,
			Account:       cfg.App.Account,
			ShareBaseURL:  cfg.App.ShareBaseURL,
			VersionCheck:  cfg.App.VersionCheck,
			TokenDuration: cfg.App.TokenDuration,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: newStorageConfig(cfg.Storage),
		Workers: ClientWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}
}

func newStorageConfig(s Storage) StorageConfig {
	return StorageConfig{
		Backend:  s.Backend,
		DSN:      s.DB.DSN,
		Dir:      s.Files.Dir,
		BoltPath: s.Bolt.Path,
	}
}
