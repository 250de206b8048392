// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"sync"
)

// memoryBlobStore keeps blobs in a map. It backs tests and the "memory"
// backend of the blob server.
type memoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryBlobStore returns an empty in-memory [Backend].
func NewMemoryBlobStore() Backend {
	return &memoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *memoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := m.GetVersioned(ctx, key)
	return data, err
}

func (m *memoryBlobStore) GetVersioned(ctx context.Context, key string) ([]byte, string, error) {
	if err := ValidateKey(key); err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[key]
	if !ok {
		return nil, "", ErrBlobNotFound
	}
	return bytes.Clone(data), ETag(data), nil
}

func (m *memoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.blobs[key] = bytes.Clone(data)
	return nil
}

func (m *memoryBlobStore) PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.blobs[key]
	switch {
	case etag == "" && ok:
		return "", ErrVersionConflict
	case etag != "" && (!ok || ETag(current) != etag):
		return "", ErrVersionConflict
	}

	m.blobs[key] = bytes.Clone(data)
	return ETag(data), nil
}

func (m *memoryBlobStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[key]; !ok {
		return ErrBlobNotFound
	}
	delete(m.blobs, key)
	return nil
}

func (m *memoryBlobStore) Copy(ctx context.Context, src, dst string) error {
	if err := ValidateKey(src); err != nil {
		return err
	}
	if err := ValidateKey(dst); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.blobs[src]
	if !ok {
		return ErrBlobNotFound
	}
	m.blobs[dst] = bytes.Clone(data)
	return nil
}

func (m *memoryBlobStore) Close() error {
	return nil
}
