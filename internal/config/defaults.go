// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	defaultServerAddress  = "localhost:8080"
	defaultAdapterAddress = "http://localhost:8080"
	defaultRequestTimeout = 30 * time.Second
	defaultSyncInterval   = 30 * time.Second
	defaultPresignTTL     = 24 * time.Hour
	defaultTokenDuration  = 5 * time.Minute
	defaultShareBaseURL   = "http://localhost:8080"
	defaultAccount        = "default"
)

func defaultConfig() *StructuredConfig {
	dataDir := defaultDataDir()

	return &StructuredConfig{
		App: App{
			KeyStore:      KeyStoreKeyring,
			KeyFile:       filepath.Join(dataDir, "key.json"),
			Account:       defaultAccount,
			ShareBaseURL:  defaultShareBaseURL,
			PresignTTL:    defaultPresignTTL,
			TokenDuration: defaultTokenDuration,
		},
		Storage: Storage{
			Backend: BackendFS,
			DB:      DB{DSN: filepath.Join(dataDir, "blobs.db")},
			Files:   Files{Dir: filepath.Join(dataDir, "blobs")},
			Bolt:    Bolt{Path: filepath.Join(dataDir, "blobs.bolt")},
		},
		Server: Server{
			HTTPAddress:    defaultServerAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    defaultAdapterAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Workers: Workers{SyncInterval: defaultSyncInterval},
	}
}

// defaultDataDir is $XDG_CONFIG_HOME/sealed-drive or its platform equivalent,
// falling back to the working directory.
func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".sealed-drive"
	}
	return filepath.Join(dir, "sealed-drive")
}
