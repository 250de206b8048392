// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// blockingWorker counts runs and returns when its context is cancelled.
type blockingWorker struct {
	started atomic.Int32
	stopped atomic.Int32
}

func (b *blockingWorker) Run(ctx context.Context) {
	b.started.Add(1)
	<-ctx.Done()
	b.stopped.Add(1)
}

func TestWorkers_StartStop(t *testing.T) {
	w1, w2 := &blockingWorker{}, &blockingWorker{}
	ws := NewWorkers(w1, w2)

	ws.Start(context.Background())
	ws.Start(context.Background())

	require.Eventually(t, func() bool {
		return w1.started.Load() == 1 && w2.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	ws.Stop()
	assert.EqualValues(t, 1, w1.stopped.Load())
	assert.EqualValues(t, 1, w2.stopped.Load())

	// stopping twice is harmless
	ws.Stop()
}

func TestWorkers_ParentContextCancel(t *testing.T) {
	w := &blockingWorker{}
	ws := NewWorkers(w)

	ctx, cancel := context.WithCancel(context.Background())
	ws.Start(ctx)
	cancel()

	require.Eventually(t, func() bool { return w.stopped.Load() == 1 }, time.Second, 5*time.Millisecond)
	ws.Stop()
}

func TestWorkers_Empty(t *testing.T) {
	ws := NewWorkers()
	ws.Start(context.Background())
	ws.Stop()
}

// scriptedSyncer returns the next manifest on each call and repeats the
// last one when the script runs out.
type scriptedSyncer struct {
	mu     sync.Mutex
	script []*models.Manifest
	calls  int
}

func (s *scriptedSyncer) Sync(context.Context) *models.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := min(s.calls, len(s.script)-1)
	s.calls++
	return s.script[i]
}

func TestManifestSyncWorker_ReportsChangesOnly(t *testing.T) {
	syncer := &scriptedSyncer{script: []*models.Manifest{
		{UpdatedAt: 1},
		{UpdatedAt: 1},
		nil,
		{UpdatedAt: 2},
	}}

	var seen []int64
	w := NewManifestSyncWorker(syncer, config.ClientWorkers{}, func(m *models.Manifest) {
		seen = append(seen, m.UpdatedAt)
	}, logger.Nop())

	ctx := context.Background()
	for range 5 {
		w.syncOnce(ctx)
	}

	assert.Equal(t, []int64{1, 2}, seen)
	assert.Equal(t, 5, syncer.calls)
}

func TestManifestSyncWorker_IntervalFloor(t *testing.T) {
	w := NewManifestSyncWorker(&scriptedSyncer{}, config.ClientWorkers{SyncInterval: time.Millisecond}, nil, logger.Nop())
	assert.Equal(t, minSyncInterval, w.interval)

	w = NewManifestSyncWorker(&scriptedSyncer{}, config.ClientWorkers{SyncInterval: time.Minute}, nil, logger.Nop())
	assert.Equal(t, time.Minute, w.interval)
}

func TestManifestSyncWorker_RunSyncsImmediately(t *testing.T) {
	syncer := &scriptedSyncer{script: []*models.Manifest{{UpdatedAt: 7}}}
	changed := make(chan int64, 1)
	w := NewManifestSyncWorker(syncer, config.ClientWorkers{SyncInterval: time.Hour}, func(m *models.Manifest) {
		changed <- m.UpdatedAt
	}, logger.Nop())

	ws := NewWorkers(w)
	ws.Start(context.Background())
	defer ws.Stop()

	select {
	case got := <-changed:
		assert.EqualValues(t, 7, got)
	case <-time.After(time.Second):
		t.Fatal("no initial sync")
	}
}
