// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

func newTestTransfer(t *testing.T) (TransferService, *Session, store.Backend) {
	t.Helper()
	s, blobs, _ := newTestSession(t)
	return NewTransferService(s, blobs, crypto.NewFileCipher(), &seqIDs{prefix: "file"}, logger.Nop()), s, blobs
}

func TestTransfer_UploadDownload(t *testing.T) {
	ctx := context.Background()
	transfer, s, blobs := newTestTransfer(t)
	content := []byte("hello, sealed drive")

	entry, err := transfer.Upload(ctx, models.UploadRequest{FileName: "hello.txt", MimeType: "text/plain", Content: content})
	require.NoError(t, err)
	assert.Equal(t, "file-1", entry.FileID)
	assert.Equal(t, int64(len(content)), entry.Size)
	assert.Len(t, entry.FileKey, 32)
	assert.Len(t, entry.FileNonce, 12)

	sealed, err := blobs.Get(ctx, models.FileBlobKey(entry.FileID))
	require.NoError(t, err)
	assert.False(t, bytes.Contains(sealed, content), "storage must never see plaintext")

	got, plain, err := transfer.Download(ctx, entry.FileID)
	require.NoError(t, err)
	assert.Equal(t, content, plain)
	assert.Equal(t, entry, got)

	files, err := s.ListFiles(nil)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestTransfer_UploadStripsImageMetadata(t *testing.T) {
	ctx := context.Background()
	transfer, _, _ := newTestTransfer(t)

	exif := []byte("Exif\x00\x00GPS-DATA")
	jpeg := []byte{0xFF, 0xD8}
	jpeg = append(jpeg, 0xFF, 0xE1, 0x00, byte(len(exif)+2))
	jpeg = append(jpeg, exif...)
	jpeg = append(jpeg, 0xFF, 0xDA, 0x00, 0x02, 0x01, 0x02, 0xFF, 0xD9)

	entry, err := transfer.Upload(ctx, models.UploadRequest{FileName: "p.jpg", MimeType: "image/jpeg", Content: jpeg})
	require.NoError(t, err)

	_, plain, err := transfer.Download(ctx, entry.FileID)
	require.NoError(t, err)
	assert.False(t, bytes.Contains(plain, []byte("GPS-DATA")))
	assert.Equal(t, int64(len(plain)), entry.Size)
}

func TestTransfer_UploadErrors(t *testing.T) {
	ctx := context.Background()
	transfer, s, blobs := newTestTransfer(t)

	_, err := transfer.Upload(ctx, models.UploadRequest{FileName: "", Content: []byte("x")})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = transfer.Upload(ctx, models.UploadRequest{FileName: "a.txt", Content: []byte("x"), FolderID: strPtr("missing")})
	assert.ErrorIs(t, err, ErrFolderNotFound)
	_, err = blobs.Get(ctx, models.FileBlobKey("file-1"))
	assert.ErrorIs(t, err, store.ErrBlobNotFound, "blob of a rejected upload is purged")

	s.Lock()
	_, err = transfer.Upload(ctx, models.UploadRequest{FileName: "a.txt", Content: []byte("x")})
	assert.ErrorIs(t, err, ErrLocked)
}

func TestTransfer_DownloadTampered(t *testing.T) {
	ctx := context.Background()
	transfer, _, blobs := newTestTransfer(t)

	entry, err := transfer.Upload(ctx, models.UploadRequest{FileName: "a.txt", Content: []byte("content")})
	require.NoError(t, err)

	sealed, err := blobs.Get(ctx, models.FileBlobKey(entry.FileID))
	require.NoError(t, err)
	sealed[0] ^= 0xFF
	require.NoError(t, blobs.Put(ctx, models.FileBlobKey(entry.FileID), sealed))

	_, _, err = transfer.Download(ctx, entry.FileID)
	assert.ErrorIs(t, err, crypto.ErrAuthenticationFailure)

	_, _, err = transfer.Download(ctx, "missing")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestTransfer_Delete(t *testing.T) {
	ctx := context.Background()
	transfer, s, blobs := newTestTransfer(t)

	entry, err := transfer.Upload(ctx, models.UploadRequest{FileName: "a.txt", Content: []byte("content")})
	require.NoError(t, err)

	require.NoError(t, transfer.Delete(ctx, entry.FileID))

	_, err = s.GetFile(entry.FileID)
	assert.ErrorIs(t, err, ErrFileNotFound)
	_, err = blobs.Get(ctx, models.FileBlobKey(entry.FileID))
	assert.ErrorIs(t, err, store.ErrBlobNotFound)

	assert.ErrorIs(t, transfer.Delete(ctx, entry.FileID), ErrFileNotFound)
}

func TestTransfer_DeleteFolder(t *testing.T) {
	ctx := context.Background()
	transfer, s, blobs := newTestTransfer(t)

	docs, err := s.CreateFolder(ctx, "Docs", nil, nil)
	require.NoError(t, err)
	inside, err := transfer.Upload(ctx, models.UploadRequest{FileName: "a.txt", Content: []byte("a"), FolderID: &docs.ID})
	require.NoError(t, err)

	require.NoError(t, transfer.DeleteFolder(ctx, docs.ID, true))

	_, err = blobs.Get(ctx, models.FileBlobKey(inside.FileID))
	assert.ErrorIs(t, err, store.ErrBlobNotFound)
	assert.ErrorIs(t, transfer.DeleteFolder(ctx, docs.ID, true), ErrFolderNotFound)
}
