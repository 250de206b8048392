// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
)

// BlobStore is an untrusted key/value store for opaque ciphertext. It never
// receives plaintext.
//
//go:generate mockgen -destination=../mock/blob_store_mock.go -package=mock . BlobStore,VersionedBlobStore
type BlobStore interface {
	// Get returns the bytes stored under key or [ErrBlobNotFound].
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error
}

// VersionedBlobStore adds ETag based preconditions. The ETag of a blob is
// the hex SHA-256 of its content, see [ETag].
type VersionedBlobStore interface {
	BlobStore
	// GetVersioned returns the blob together with its current ETag.
	GetVersioned(ctx context.Context, key string) ([]byte, string, error)
	// PutIfMatch stores data only when the current ETag equals etag. An empty
	// etag means the key must not exist yet. Returns the new ETag, or
	// [ErrVersionConflict] when the precondition fails.
	PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error)
}

// BlobDeleter removes blobs.
type BlobDeleter interface {
	// Delete removes key or returns [ErrBlobNotFound].
	Delete(ctx context.Context, key string) error
}

// BlobCopier duplicates a blob without the caller downloading it.
type BlobCopier interface {
	// Copy stores the content of src under dst. src must exist.
	Copy(ctx context.Context, src, dst string) error
}

// Backend is what every local store implementation offers. The blob server
// requires a Backend; the drive client only needs a [BlobStore].
type Backend interface {
	VersionedBlobStore
	BlobDeleter
	BlobCopier
	// Close releases files or connections held by the backend.
	Close() error
}
