// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
)

// NewBlobStore constructs the local [Backend] named by cfg.Backend:
//   - memory: process-local map, lost on exit;
//   - fs: one file per blob under cfg.Dir;
//   - bolt: a single bbolt file at cfg.BoltPath;
//   - sqlite / postgres: the "blobs" table reached through cfg.DSN, migrated
//     on open.
//
// The "http" backend talks to a remote blob server and is constructed by the
// adapter package; here it yields [ErrUnsupportedBackend].
func NewBlobStore(ctx context.Context, cfg config.StorageConfig, log *logger.Logger) (Backend, error) {
	log.Info().Str("backend", cfg.Backend).Msg("creating blob store...")

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryBlobStore(), nil

	case config.BackendFS:
		return NewFSBlobStore(cfg.Dir, log)

	case config.BackendBolt:
		return NewBoltBlobStore(cfg.BoltPath)

	case config.BackendSQLite, config.BackendPostgres:
		var (
			db  *DB
			err error
		)
		if cfg.Backend == config.BackendSQLite {
			db, err = NewConnectSQLite(ctx, cfg.DSN, log)
		} else {
			db, err = NewConnectPostgres(ctx, cfg.DSN, log)
		}
		if err != nil {
			return nil, fmt.Errorf("%s connection error: %w", cfg.Backend, err)
		}

		if err = db.Migrate(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migration failed: %w", err)
		}
		return NewSQLBlobStore(db, log), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, cfg.Backend)
	}
}
