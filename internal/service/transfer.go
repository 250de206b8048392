package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/validators"
	"github.com/MKhiriev/go-sealed-drive/models"
)

type transferService struct {
	manifest ManifestStore
	blobs    store.BlobStore
	cipher   crypto.FileCipher
	ids      IDGenerator
	logger   *logger.Logger
}

func NewTransferService(manifest ManifestStore, blobs store.BlobStore, cipher crypto.FileCipher, ids IDGenerator, log *logger.Logger) TransferService {
	return &transferService{manifest: manifest, blobs: blobs, cipher: cipher, ids: ids, logger: log}
}

func (t *transferService) Upload(ctx context.Context, req models.UploadRequest) (models.FileEntry, error) {
	if err := validators.ValidateName(req.FileName); err != nil {
		return models.FileEntry{}, validationError(err)
	}
	if !t.manifest.IsUnlocked() {
		return models.FileEntry{}, ErrLocked
	}

	content, err := t.cipher.StripMetadata(req.Content, req.MimeType)
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("strip metadata: %w", err)
	}

	key, nonce, err := t.cipher.GenerateFileKey()
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("generate file key: %w", err)
	}

	sealed, err := t.cipher.Encrypt(content, key, nonce)
	if err != nil {
		return models.FileEntry{}, fmt.Errorf("encrypt file: %w", err)
	}

	entry := models.FileEntry{
		FileID:    t.ids.Generate(),
		FileName:  req.FileName,
		Size:      int64(len(content)),
		MimeType:  req.MimeType,
		FolderID:  clonePtr(req.FolderID),
		FileKey:   key,
		FileNonce: nonce,
	}

	blobKey := models.FileBlobKey(entry.FileID)
	if err = t.blobs.Put(ctx, blobKey, sealed); err != nil {
		return models.FileEntry{}, fmt.Errorf("put file blob: %w", err)
	}

	if err = t.manifest.AddFile(ctx, entry); err != nil {
		t.purge(ctx, blobKey)
		return models.FileEntry{}, fmt.Errorf("record uploaded file: %w", err)
	}

	t.logger.Info().Str("func", "transferService.Upload").
		Str("file_id", entry.FileID).
		Int64("size", entry.Size).
		Msg("file uploaded")
	return t.manifest.GetFile(entry.FileID)
}

func (t *transferService) Download(ctx context.Context, fileID string) (models.FileEntry, []byte, error) {
	entry, err := t.manifest.GetFile(fileID)
	if err != nil {
		return models.FileEntry{}, nil, err
	}

	sealed, err := t.blobs.Get(ctx, models.FileBlobKey(fileID))
	if err != nil {
		return models.FileEntry{}, nil, fmt.Errorf("get file blob: %w", err)
	}

	content, err := t.cipher.Decrypt(sealed, entry.FileKey, entry.FileNonce)
	if err != nil {
		return models.FileEntry{}, nil, fmt.Errorf("decrypt file %s: %w", fileID, err)
	}
	return entry, content, nil
}

func (t *transferService) Delete(ctx context.Context, fileID string) error {
	removed, err := t.manifest.RemoveFile(ctx, fileID)
	if err != nil {
		return err
	}
	t.purge(ctx, models.FileBlobKey(removed.FileID))
	return nil
}

func (t *transferService) DeleteFolder(ctx context.Context, folderID string, deleteContents bool) error {
	removed, err := t.manifest.DeleteFolder(ctx, folderID, deleteContents)
	if err != nil {
		return err
	}
	for _, f := range removed {
		t.purge(ctx, models.FileBlobKey(f.FileID))
	}
	return nil
}

// purge deletes a content blob when the store supports it. Failures only
// leave an unreferenced ciphertext behind, so they are logged.
func (t *transferService) purge(ctx context.Context, key string) {
	deleter, ok := t.blobs.(store.BlobDeleter)
	if !ok {
		return
	}
	if err := deleter.Delete(ctx, key); err != nil {
		t.logger.Warn().Err(err).Str("func", "transferService.purge").Str("key", key).Msg("could not delete blob")
	}
}
