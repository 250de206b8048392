// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
)

// fsBlobStore keeps every blob in its own file below root. Writes go to a
// temporary file in the target directory and are renamed into place, so a
// reader never observes a half-written blob.
//
// Conditional writes are serialized by an in-process mutex; two processes
// sharing one directory fall back to last-write-wins.
type fsBlobStore struct {
	root   string
	mu     sync.Mutex
	logger *logger.Logger
}

// NewFSBlobStore constructs a filesystem [Backend] rooted at root, creating
// the directory if needed.
func NewFSBlobStore(root string, log *logger.Logger) (Backend, error) {
	if root == "" {
		return nil, errors.New("fs blob store: root directory is required")
	}
	if err := os.MkdirAll(root, 0o700); err != nil {
		return nil, fmt.Errorf("%w: create root: %w", ErrTransport, err)
	}
	return &fsBlobStore{root: root, logger: log}, nil
}

func (f *fsBlobStore) pathFor(key string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	return filepath.Join(f.root, filepath.FromSlash(key)), nil
}

func (f *fsBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := f.GetVersioned(ctx, key)
	return data, err
}

func (f *fsBlobStore) GetVersioned(ctx context.Context, key string) ([]byte, string, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return nil, "", err
	}
	if err = ctx.Err(); err != nil {
		return nil, "", err
	}

	data, err := f.read(path)
	if err != nil {
		return nil, "", err
	}
	return data, ETag(data), nil
}

func (f *fsBlobStore) Put(ctx context.Context, key string, data []byte) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	return f.write(path, data)
}

func (f *fsBlobStore) PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error) {
	path, err := f.pathFor(key)
	if err != nil {
		return "", err
	}
	if err = ctx.Err(); err != nil {
		return "", err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	current, err := f.read(path)
	switch {
	case errors.Is(err, ErrBlobNotFound):
		if etag != "" {
			return "", ErrVersionConflict
		}
	case err != nil:
		return "", err
	case etag == "" || ETag(current) != etag:
		return "", ErrVersionConflict
	}

	if err = f.write(path, data); err != nil {
		return "", err
	}
	return ETag(data), nil
}

func (f *fsBlobStore) Delete(ctx context.Context, key string) error {
	path, err := f.pathFor(key)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err = os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBlobNotFound
		}
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

func (f *fsBlobStore) Copy(ctx context.Context, src, dst string) error {
	srcPath, err := f.pathFor(src)
	if err != nil {
		return err
	}
	dstPath, err := f.pathFor(dst)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.read(srcPath)
	if err != nil {
		return err
	}
	return f.write(dstPath, data)
}

func (f *fsBlobStore) Close() error {
	return nil
}

func (f *fsBlobStore) read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBlobNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return data, nil
}

func (f *fsBlobStore) write(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	tmp, err := os.CreateTemp(dir, ".blob-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	tmpName := tmp.Name()

	if _, err = tmp.Write(data); err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		_ = os.Remove(tmpName)
		f.logger.Err(err).Str("func", "fsBlobStore.write").Str("path", path).Msg("failed to write blob")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}
