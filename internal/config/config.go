// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Storage backends understood by the store factory and the client.
const (
	BackendMemory   = "memory"
	BackendFS       = "fs"
	BackendBolt     = "bolt"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendHTTP     = "http"
)

// Key stores for the user's keypair backup.
const (
	KeyStoreKeyring = "keyring"
	KeyStoreFile    = "file"
)

// StructuredConfig is the top-level configuration container shared by the
// drive client and the blob server. It is populated by merging values from
// environment variables, command-line flags, an optional JSON file and
// built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds key handling, sharing and signing settings.
	App App `envPrefix:"APP_"`

	// Storage selects and configures the blob backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds listen address and timeout settings for the blob server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds settings for talking to a remote blob server.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Workers holds background refresh settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level settings.
type App struct {
	// KeyStore selects where the keypair backup lives: "keyring" or "file".
	// Env: APP_KEY_STORE
	KeyStore string `env:"KEY_STORE"`

	// KeyFile is the backup document path used when KeyStore is "file".
	// Env: APP_KEY_FILE
	KeyFile string `env:"KEY_FILE"`

	// Account names the keyring entry holding the backup.
	// Env: APP_ACCOUNT
	Account string `env:"ACCOUNT"`

	// ShareBaseURL is the origin of the page that opens share links.
	// Env: APP_SHARE_BASE_URL
	ShareBaseURL string `env:"SHARE_BASE_URL"`

	// VersionCheck turns on conditional manifest writes when the backend
	// supports them.
	// Env: APP_VERSION_CHECK
	VersionCheck bool `env:"VERSION_CHECK"`

	// HashKey signs presigned download URLs on the blob server.
	// Env: APP_HASH_KEY
	HashKey string `env:"HASH_KEY"`

	// PresignTTL is how long a presigned download URL stays valid.
	// Env: APP_PRESIGN_TTL
	PresignTTL time.Duration `env:"PRESIGN_TTL"`

	// TokenDuration is the lifetime of the client's EdDSA access tokens.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// AllowedKeys is an optional allow-list of hex public keys accepted by
	// the blob server. Empty means any valid signature is accepted.
	// Env: APP_ALLOWED_KEYS (comma separated)
	AllowedKeys []string `env:"ALLOWED_KEYS" envSeparator:","`

	// Version is the semantic version string of the running binary.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all blob backends.
type Storage struct {
	// Backend is one of memory, fs, bolt, sqlite, postgres or http.
	// Env: STORAGE_BACKEND
	Backend string `env:"BACKEND"`

	// DB holds the relational database connection settings.
	DB DB `envPrefix:"DB_"`

	// Files holds the directory used by the fs backend.
	Files Files `envPrefix:"FILES_"`

	// Bolt holds the database file used by the bolt backend.
	Bolt Bolt `envPrefix:"BOLT_"`
}

// DB holds connection settings for the sqlite and postgres backends.
type DB struct {
	// DSN is a PostgreSQL connection string or an SQLite file path.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Files holds file-system settings for the fs backend.
type Files struct {
	// Dir is the root directory for blobs.
	// Env: STORAGE_FILES_DIR
	Dir string `env:"DIR"`
}

// Bolt holds bbolt settings.
type Bolt struct {
	// Path is the bbolt database file.
	// Env: STORAGE_BOLT_PATH
	Path string `env:"PATH"`
}

// Server holds network and timeout settings for the blob server.
type Server struct {
	// HTTPAddress is the TCP address the blob server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Adapter holds settings for the HTTP blob client.
type Adapter struct {
	// HTTPAddress is the blob server base URL, e.g. "http://localhost:8080".
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval is how often the manifest is re-fetched by `drive watch`.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}
