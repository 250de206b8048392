// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// blobsBucket holds every blob, keyed by its store key.
var blobsBucket = []byte("blobs")

// boltBlobStore is a single-file [Backend] on top of bbolt. Every conditional
// write runs in one read-write transaction, so the ETag check and the write
// are atomic across goroutines.
type boltBlobStore struct {
	db *bolt.DB
}

// NewBoltBlobStore opens or creates the bbolt database at path.
func NewBoltBlobStore(path string) (Backend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrTransport, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(blobsBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: failed to create bucket %s: %w", ErrTransport, blobsBucket, err)
	}

	return &boltBlobStore{db: db}, nil
}

func (b *boltBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := b.GetVersioned(ctx, key)
	return data, err
}

func (b *boltBlobStore) GetVersioned(ctx context.Context, key string) ([]byte, string, error) {
	if err := ValidateKey(key); err != nil {
		return nil, "", err
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(blobsBucket).Get([]byte(key))
		if v == nil {
			return ErrBlobNotFound
		}
		// the slice is only valid during the transaction
		data = bytes.Clone(v)
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return data, ETag(data), nil
}

func (b *boltBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(blobsBucket).Put([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return nil
}

func (b *boltBlobStore) PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(blobsBucket)
		current := bucket.Get([]byte(key))
		switch {
		case etag == "" && current != nil:
			return ErrVersionConflict
		case etag != "" && (current == nil || ETag(current) != etag):
			return ErrVersionConflict
		}
		return bucket.Put([]byte(key), data)
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return ETag(data), nil
}

func (b *boltBlobStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(blobsBucket)
		if bucket.Get([]byte(key)) == nil {
			return ErrBlobNotFound
		}
		return bucket.Delete([]byte(key))
	})
}

func (b *boltBlobStore) Copy(ctx context.Context, src, dst string) error {
	if err := ValidateKey(src); err != nil {
		return err
	}
	if err := ValidateKey(dst); err != nil {
		return err
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(blobsBucket)
		v := bucket.Get([]byte(src))
		if v == nil {
			return ErrBlobNotFound
		}
		return bucket.Put([]byte(dst), bytes.Clone(v))
	})
}

func (b *boltBlobStore) Close() error {
	return b.db.Close()
}
