// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service holds the drive's business logic on top of the crypto
// primitives and a BlobStore.
//
// [Session] is the manifest store: it owns the master key and the decrypted
// manifest for one authenticated context and performs every structural
// change as a read-modify-seal-upload cycle. The transfer service moves file
// contents in and out of storage and the share service builds and opens
// password-protected share links.
package service

import (
	"context"
	"iter"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// ManifestStore is the encrypted file and folder index of one account.
//
// It is a state machine: Locked → (Initialize | Unlock) → Unlocked → Lock →
// Locked. Every method other than Exists, Initialize, Unlock, Lock and
// IsUnlocked returns [ErrLocked] in the Locked state.
type ManifestStore interface {
	// Exists reports whether a manifest blob is present in storage.
	Exists(ctx context.Context) (bool, error)

	// Initialize writes a fresh empty manifest sealed under masterKey and
	// unlocks the session. An existing manifest is overwritten.
	Initialize(ctx context.Context, masterKey []byte) error

	// Unlock loads and opens the stored manifest. A wrong key or tampered
	// blob yields [ErrKeysMismatch].
	Unlock(ctx context.Context, masterKey []byte) error

	// Lock forgets the key and the manifest.
	Lock()

	IsUnlocked() bool

	// Sync reloads the manifest with the cached key. It never fails: on any
	// error the previous state is kept, logged and returned.
	Sync(ctx context.Context) *models.Manifest

	// Manifest returns a copy of the current manifest.
	Manifest() (*models.Manifest, error)

	AddFile(ctx context.Context, entry models.FileEntry) error
	RemoveFile(ctx context.Context, fileID string) (models.FileEntry, error)
	RenameFile(ctx context.Context, fileID, name string) error
	ToggleFavorite(ctx context.Context, fileID string) (bool, error)
	MoveFiles(ctx context.Context, fileIDs []string, folderID *string) error

	// CopyFilesToFolder copies each file's ciphertext blob under a new
	// identifier and records the copy. Progress is reported after each
	// committed item; stopping the iteration stops further copies.
	CopyFilesToFolder(ctx context.Context, fileIDs []string, folderID *string) iter.Seq2[models.CopyProgress, error]

	CreateFolder(ctx context.Context, name string, parentID, color *string) (models.Folder, error)
	RenameFolder(ctx context.Context, folderID, name string) error
	SetFolderColor(ctx context.Context, folderID string, color *string) error

	// DeleteFolder removes a folder. Its files move to the root, or are
	// removed from the manifest and returned when deleteContents is set.
	// Sub-folders move up to the deleted folder's parent.
	DeleteFolder(ctx context.Context, folderID string, deleteContents bool) ([]models.FileEntry, error)

	ListFiles(folderID *string) ([]models.FileEntry, error)
	ListFolders(parentID *string) ([]models.Folder, error)
	GetFile(fileID string) (models.FileEntry, error)
	GetFolder(folderID string) (models.Folder, error)
	Favorites() ([]models.FileEntry, error)

	// FolderPath returns the chain of folders from the root down to folderID.
	FolderPath(folderID string) ([]models.Folder, error)
}

// TransferService moves file contents between the caller and storage.
type TransferService interface {
	// Upload scrubs image metadata, encrypts content under a fresh file key,
	// stores the blob and records the file in the manifest.
	Upload(ctx context.Context, req models.UploadRequest) (models.FileEntry, error)

	// Download fetches and decrypts the content of fileID.
	Download(ctx context.Context, fileID string) (models.FileEntry, []byte, error)

	// Delete removes fileID from the manifest, then deletes its blob on a
	// best-effort basis.
	Delete(ctx context.Context, fileID string) error

	// DeleteFolder deletes a folder through the manifest store and purges
	// the blobs of removed files on a best-effort basis.
	DeleteFolder(ctx context.Context, folderID string, deleteContents bool) error
}

// ShareService creates and opens password-protected share links.
type ShareService interface {
	CreateShareLink(ctx context.Context, fileID, password string) (string, error)
	OpenShareLink(ctx context.Context, link, password string) (models.SharedFile, error)
}

// Presigner issues a time-limited download URL for one blob that needs no
// account credentials.
type Presigner interface {
	Presign(ctx context.Context, key string) (string, error)
}

// SharedBlobFetcher downloads a blob through a presigned URL.
type SharedBlobFetcher interface {
	FetchShared(ctx context.Context, url string) ([]byte, error)
}

// IDGenerator issues unique identifiers for files and folders.
type IDGenerator interface {
	Generate() string
}

// BlobServer is the server side of the blob protocol. Every key is scoped
// to the owner, the hex public key of the authenticated account.
type BlobServer interface {
	// ParseToken verifies an access token, including its lifetime against
	// the configured token duration.
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
	// Authorize checks owner against the allow-list.
	Authorize(owner string) error

	Get(ctx context.Context, owner, key string) ([]byte, string, error)
	Put(ctx context.Context, owner, key string, data []byte) (string, error)
	// PutIfMatch writes only when the current ETag equals etag, or when the
	// key is absent and etag is empty.
	PutIfMatch(ctx context.Context, owner, key string, data []byte, etag string) (string, error)
	Delete(ctx context.Context, owner, key string) error
	Copy(ctx context.Context, owner, src, dst string) error

	// Presign returns the path and query of an anonymous download of key
	// and its expiry in unix seconds.
	Presign(ctx context.Context, owner, key string) (string, int64, error)
	// OpenShared checks a presigned download and returns the blob.
	OpenShared(ctx context.Context, owner, key string, expires int64, signature string) ([]byte, error)
}
