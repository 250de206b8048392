package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-sealed-drive/internal/validators"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// AddFile records an uploaded file. The entry's FolderID, if set, must name
// an existing folder and FileID must be unused.
func (s *Session) AddFile(ctx context.Context, entry models.FileEntry) error {
	if err := s.validator.Validate(ctx, entry); err != nil {
		return validationError(err)
	}

	return s.mutate(ctx, "AddFile", func(m *models.Manifest) error {
		if m.FileIndex(entry.FileID) >= 0 {
			return ErrDuplicateFile
		}
		if err := requireFolder(m, entry.FolderID); err != nil {
			return err
		}

		added := entry.Clone()
		if added.UploadedAt == 0 {
			added.UploadedAt = s.nowMillis()
		}
		m.Files = append(m.Files, added)
		return nil
	})
}

// RemoveFile drops fileID from the manifest and returns the removed entry so
// the caller can purge its blob.
func (s *Session) RemoveFile(ctx context.Context, fileID string) (models.FileEntry, error) {
	var removed models.FileEntry
	err := s.mutate(ctx, "RemoveFile", func(m *models.Manifest) error {
		i := m.FileIndex(fileID)
		if i < 0 {
			return ErrFileNotFound
		}
		removed = m.Files[i]
		m.Files = slices.Delete(m.Files, i, i+1)
		return nil
	})
	if err != nil {
		return models.FileEntry{}, err
	}
	return removed, nil
}

func (s *Session) RenameFile(ctx context.Context, fileID, name string) error {
	if err := s.validator.Validate(ctx, models.FileEntry{FileName: name}, validators.FieldName); err != nil {
		return validationError(err)
	}

	return s.mutate(ctx, "RenameFile", func(m *models.Manifest) error {
		i := m.FileIndex(fileID)
		if i < 0 {
			return ErrFileNotFound
		}
		m.Files[i].FileName = name
		return nil
	})
}

// ToggleFavorite flips the favorite flag of fileID and returns the new value.
func (s *Session) ToggleFavorite(ctx context.Context, fileID string) (bool, error) {
	var favorite bool
	err := s.mutate(ctx, "ToggleFavorite", func(m *models.Manifest) error {
		i := m.FileIndex(fileID)
		if i < 0 {
			return ErrFileNotFound
		}
		m.Files[i].IsFavorite = !m.Files[i].IsFavorite
		favorite = m.Files[i].IsFavorite
		return nil
	})
	return favorite, err
}

// MoveFiles moves every file in fileIDs to folderID (nil is the root). Either
// all files move or none do.
func (s *Session) MoveFiles(ctx context.Context, fileIDs []string, folderID *string) error {
	if len(fileIDs) == 0 {
		return ErrNoFilesGiven
	}

	return s.mutate(ctx, "MoveFiles", func(m *models.Manifest) error {
		if err := requireFolder(m, folderID); err != nil {
			return err
		}
		for _, id := range fileIDs {
			i := m.FileIndex(id)
			if i < 0 {
				return ErrFileNotFound
			}
			m.Files[i].FolderID = clonePtr(folderID)
		}
		return nil
	})
}

// ListFiles returns the files directly inside folderID; nil lists the root.
func (s *Session) ListFiles(folderID *string) ([]models.FileEntry, error) {
	var files []models.FileEntry
	err := s.view(func(m *models.Manifest) error {
		files = make([]models.FileEntry, 0)
		for _, f := range m.Files {
			if f.InFolder(folderID) {
				files = append(files, f.Clone())
			}
		}
		return nil
	})
	return files, err
}

func (s *Session) GetFile(fileID string) (models.FileEntry, error) {
	var file models.FileEntry
	err := s.view(func(m *models.Manifest) error {
		i := m.FileIndex(fileID)
		if i < 0 {
			return ErrFileNotFound
		}
		file = m.Files[i].Clone()
		return nil
	})
	return file, err
}

func (s *Session) Favorites() ([]models.FileEntry, error) {
	var files []models.FileEntry
	err := s.view(func(m *models.Manifest) error {
		files = make([]models.FileEntry, 0)
		for _, f := range m.Files {
			if f.IsFavorite {
				files = append(files, f.Clone())
			}
		}
		return nil
	})
	return files, err
}

// requireFolder fails unless folderID is nil or names an existing folder.
func requireFolder(m *models.Manifest, folderID *string) error {
	if folderID != nil && m.FolderIndex(*folderID) < 0 {
		return ErrFolderNotFound
	}
	return nil
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
