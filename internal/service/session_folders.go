package service

import (
	"context"
	"slices"

	"github.com/MKhiriev/go-sealed-drive/internal/validators"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// CreateFolder adds a folder under parentID (nil is the root). The parent
// must exist, so a folder can never become its own ancestor.
func (s *Session) CreateFolder(ctx context.Context, name string, parentID, color *string) (models.Folder, error) {
	folder := models.Folder{
		ID:       s.ids.Generate(),
		Name:     name,
		ParentID: clonePtr(parentID),
		Color:    clonePtr(color),
	}
	if err := s.validator.Validate(ctx, folder); err != nil {
		return models.Folder{}, validationError(err)
	}

	err := s.mutate(ctx, "CreateFolder", func(m *models.Manifest) error {
		if err := requireFolder(m, parentID); err != nil {
			return err
		}
		folder.CreatedAt = s.nowMillis()
		m.Folders = append(m.Folders, folder.Clone())
		return nil
	})
	if err != nil {
		return models.Folder{}, err
	}
	return folder, nil
}

func (s *Session) RenameFolder(ctx context.Context, folderID, name string) error {
	if err := s.validator.Validate(ctx, models.Folder{Name: name}, validators.FieldName); err != nil {
		return validationError(err)
	}

	return s.mutate(ctx, "RenameFolder", func(m *models.Manifest) error {
		i := m.FolderIndex(folderID)
		if i < 0 {
			return ErrFolderNotFound
		}
		m.Folders[i].Name = name
		return nil
	})
}

// SetFolderColor sets or, with nil, clears the folder's label color.
func (s *Session) SetFolderColor(ctx context.Context, folderID string, color *string) error {
	if err := s.validator.Validate(ctx, models.Folder{Color: color}, validators.FieldColor); err != nil {
		return validationError(err)
	}

	return s.mutate(ctx, "SetFolderColor", func(m *models.Manifest) error {
		i := m.FolderIndex(folderID)
		if i < 0 {
			return ErrFolderNotFound
		}
		m.Folders[i].Color = clonePtr(color)
		return nil
	})
}

func (s *Session) DeleteFolder(ctx context.Context, folderID string, deleteContents bool) ([]models.FileEntry, error) {
	var removed []models.FileEntry
	err := s.mutate(ctx, "DeleteFolder", func(m *models.Manifest) error {
		i := m.FolderIndex(folderID)
		if i < 0 {
			return ErrFolderNotFound
		}
		parent := m.Folders[i].ParentID
		m.Folders = slices.Delete(m.Folders, i, i+1)

		for j := range m.Folders {
			if m.Folders[j].ParentID != nil && *m.Folders[j].ParentID == folderID {
				m.Folders[j].ParentID = clonePtr(parent)
			}
		}

		removed = removed[:0]
		kept := m.Files[:0]
		for _, f := range m.Files {
			if f.FolderID == nil || *f.FolderID != folderID {
				kept = append(kept, f)
				continue
			}
			if deleteContents {
				removed = append(removed, f)
				continue
			}
			f.FolderID = nil
			kept = append(kept, f)
		}
		m.Files = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}

// ListFolders returns the folders directly under parentID; nil lists the
// top level.
func (s *Session) ListFolders(parentID *string) ([]models.Folder, error) {
	var folders []models.Folder
	err := s.view(func(m *models.Manifest) error {
		folders = make([]models.Folder, 0)
		for _, f := range m.Folders {
			if models.SameParent(f.ParentID, parentID) {
				folders = append(folders, f.Clone())
			}
		}
		return nil
	})
	return folders, err
}

func (s *Session) GetFolder(folderID string) (models.Folder, error) {
	var folder models.Folder
	err := s.view(func(m *models.Manifest) error {
		i := m.FolderIndex(folderID)
		if i < 0 {
			return ErrFolderNotFound
		}
		folder = m.Folders[i].Clone()
		return nil
	})
	return folder, err
}

func (s *Session) FolderPath(folderID string) ([]models.Folder, error) {
	var path []models.Folder
	err := s.view(func(m *models.Manifest) error {
		current := &folderID
		for current != nil {
			// a manifest written elsewhere may contain a cycle
			if len(path) > len(m.Folders) {
				return ErrCorruptManifest
			}
			i := m.FolderIndex(*current)
			if i < 0 {
				return ErrFolderNotFound
			}
			path = append(path, m.Folders[i].Clone())
			current = m.Folders[i].ParentID
		}
		slices.Reverse(path)
		return nil
	})
	return path, err
}
