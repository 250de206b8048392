// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"net/url"
)

func (cfg *ClientConfig) validate() error {
	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.Storage.Backend == BackendHTTP {
		u, err := url.Parse(cfg.Adapter.HTTPAddress)
		if err != nil || u.Scheme == "" || u.Host == "" || cfg.Adapter.RequestTimeout <= 0 {
			return ErrInvalidAdapterConfigs
		}
	}

	if cfg.Workers.SyncInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	switch cfg.App.KeyStore {
	case KeyStoreKeyring:
		if cfg.App.Account == "" {
			return ErrInvalidAppConfigs
		}
	case KeyStoreFile:
		if cfg.App.KeyFile == "" {
			return ErrInvalidAppConfigs
		}
	default:
		return ErrInvalidAppConfigs
	}

	if cfg.App.ShareBaseURL == "" {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.Storage.Backend == BackendHTTP {
		return ErrInvalidStorageConfigs
	}
	if err := cfg.Storage.validate(); err != nil {
		return err
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.App.HashKey == "" || cfg.App.PresignTTL <= 0 {
		return ErrInvalidAppConfigs
	}

	return nil
}

func (s StorageConfig) validate() error {
	switch s.Backend {
	case BackendMemory, BackendHTTP:
		return nil
	case BackendFS:
		if s.Dir == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendBolt:
		if s.BoltPath == "" {
			return ErrInvalidStorageConfigs
		}
	case BackendSQLite, BackendPostgres:
		if s.DSN == "" {
			return ErrInvalidStorageConfigs
		}
	default:
		return ErrInvalidStorageConfigs
	}
	return nil
}
