// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/models"
)

const minSyncInterval = time.Second

// ManifestSyncWorker polls the manifest store and reports every manifest
// whose UpdatedAt differs from the last one seen.
type ManifestSyncWorker struct {
	manifest ManifestSyncer
	interval time.Duration
	onChange func(*models.Manifest)
	logger   *logger.Logger

	lastUpdatedAt int64
}

func NewManifestSyncWorker(manifest ManifestSyncer, cfg config.ClientWorkers, onChange func(*models.Manifest), log *logger.Logger) *ManifestSyncWorker {
	interval := cfg.SyncInterval
	if interval < minSyncInterval {
		interval = minSyncInterval
	}
	return &ManifestSyncWorker{
		manifest: manifest,
		interval: interval,
		onChange: onChange,
		logger:   log,
	}
}

// Run syncs once immediately, then on every tick until ctx is done.
func (w *ManifestSyncWorker) Run(ctx context.Context) {
	w.logger.Info().Dur("interval", w.interval).Msg("manifest sync worker started")
	defer w.logger.Info().Msg("manifest sync worker stopped")

	w.syncOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.syncOnce(ctx)
		}
	}
}

func (w *ManifestSyncWorker) syncOnce(ctx context.Context) {
	m := w.manifest.Sync(ctx)
	if m == nil || m.UpdatedAt == w.lastUpdatedAt {
		return
	}

	w.logger.Debug().Str("func", "*ManifestSyncWorker.syncOnce").Int64("updated_at", m.UpdatedAt).Msg("manifest changed")
	w.lastUpdatedAt = m.UpdatedAt
	if w.onChange != nil {
		w.onChange(m)
	}
}
