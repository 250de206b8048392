package service

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

const copySuffix = " (copy)"

// CopyFilesToFolder returns a lazy sequence: nothing is copied until it is
// ranged over, and ranging again starts a new batch. Each item is committed
// on its own, so an error or an early break leaves earlier copies in place.
// After an error the sequence yields the error once and ends.
func (s *Session) CopyFilesToFolder(ctx context.Context, fileIDs []string, folderID *string) iter.Seq2[models.CopyProgress, error] {
	return func(yield func(models.CopyProgress, error) bool) {
		total := len(fileIDs)
		for i, id := range fileIDs {
			progress := models.CopyProgress{Completed: i, Total: total}

			if err := ctx.Err(); err != nil {
				yield(progress, err)
				return
			}

			copied, err := s.copyFile(ctx, id, folderID)
			if err != nil {
				yield(progress, fmt.Errorf("copy file %s: %w", id, err))
				return
			}

			progress.Completed, progress.Copied = i+1, copied
			if !yield(progress, nil) {
				return
			}
		}
	}
}

// copyFile duplicates the ciphertext blob of fileID under a new identifier
// and records the copy. The file key is reused, so nothing is decrypted.
func (s *Session) copyFile(ctx context.Context, fileID string, folderID *string) (models.FileEntry, error) {
	var copied models.FileEntry
	err := s.mutate(ctx, "CopyFile", func(m *models.Manifest) error {
		i := m.FileIndex(fileID)
		if i < 0 {
			return ErrFileNotFound
		}
		if err := requireFolder(m, folderID); err != nil {
			return err
		}

		src := m.Files[i]
		copied = src.Clone()
		copied.FileID = s.ids.Generate()
		copied.FolderID = clonePtr(folderID)
		copied.IsFavorite = false
		copied.UploadedAt = s.nowMillis()
		if models.SameParent(src.FolderID, folderID) {
			copied.FileName = copyName(src.FileName)
		}

		if err := s.copyBlob(ctx, models.FileBlobKey(src.FileID), models.FileBlobKey(copied.FileID)); err != nil {
			return err
		}
		m.Files = append(m.Files, copied.Clone())
		return nil
	})
	return copied, err
}

func (s *Session) copyBlob(ctx context.Context, src, dst string) error {
	if copier, ok := s.blobs.(store.BlobCopier); ok {
		if err := copier.Copy(ctx, src, dst); err != nil {
			return fmt.Errorf("copy blob: %w", err)
		}
		return nil
	}

	data, err := s.blobs.Get(ctx, src)
	if err != nil {
		return fmt.Errorf("get source blob: %w", err)
	}
	if err = s.blobs.Put(ctx, dst, data); err != nil {
		return fmt.Errorf("put copied blob: %w", err)
	}
	return nil
}

// copyName inserts " (copy)" before the extension: "a.txt" becomes
// "a (copy).txt". Names without an extension, and dotfiles, get the suffix
// appended.
func copyName(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot <= 0 {
		return name + copySuffix
	}
	return name[:dot] + copySuffix + name[dot:]
}
