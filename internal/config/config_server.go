// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ServerApp holds blob-server application settings.
type ServerApp struct {
	// HashKey signs presigned download URLs.
	HashKey string
	// PresignTTL is the validity window of presigned URLs.
	PresignTTL time.Duration
	// TokenDuration caps exp - iat of accepted access tokens. Zero
	// accepts any lifetime.
	TokenDuration time.Duration
	// AllowedKeys optionally restricts which public keys may write.
	AllowedKeys []string
	// Version is reported by the version endpoint.
	Version string
}

// ServerHTTP holds the listener settings.
type ServerHTTP struct {
	HTTPAddress    string
	RequestTimeout time.Duration
}

// ServerConfig is the blob server configuration view.
type ServerConfig struct {
	App     ServerApp
	Server  ServerHTTP
	Storage StorageConfig
}

// GetServerConfig builds and validates the blob server configuration.
func GetServerConfig(fs *pflag.FlagSet) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := NewServerConfig(cfg)
	return serverCfg, serverCfg.validate()
}

// NewServerConfig maps the server-relevant fields of cfg without validating.
func NewServerConfig(cfg *StructuredConfig) *ServerConfig {
	return &ServerConfig{
		App: ServerApp{
			HashKey:       cfg.App.HashKey,
			PresignTTL:    cfg.App.PresignTTL,
			TokenDuration: cfg.App.TokenDuration,
			AllowedKeys:   cfg.App.AllowedKeys,
			Version:       cfg.App.Version,
		},
		Server: ServerHTTP{
			HTTPAddress:    cfg.Server.HTTPAddress,
			RequestTimeout: cfg.Server.RequestTimeout,
		},
		Storage: newStorageConfig(cfg.Storage),
	}
}
