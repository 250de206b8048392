// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "slices"

// ManifestVersion is the schema version written by this build. Documents
// with a lower version are migrated on decode.
const ManifestVersion = 1

// Manifest is the single encrypted index of an account. It enumerates every
// file (including the key material for its content blob) and every folder.
// Timestamps are unix milliseconds.
type Manifest struct {
	Version   int         `json:"version"`
	Files     []FileEntry `json:"files"`
	Folders   []Folder    `json:"folders"`
	CreatedAt int64       `json:"createdAt"`
	UpdatedAt int64       `json:"updatedAt"`
}

// FileEntry describes one uploaded file. FileKey and FileNonce seal the
// content blob stored under [FileBlobKey](FileID).
type FileEntry struct {
	FileID     string  `json:"fileId"`
	FileName   string  `json:"fileName"`
	Size       int64   `json:"size"`
	MimeType   string  `json:"mimeType"`
	FolderID   *string `json:"folderId"`
	IsFavorite bool    `json:"isFavorite"`
	UploadedAt int64   `json:"uploadedAt"`
	FileKey    []byte  `json:"fileKey"`
	FileNonce  []byte  `json:"fileNonce"`
}

// Folder is a node of the folder tree. A nil ParentID places the folder at
// the root.
type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	ParentID  *string `json:"parentId"`
	CreatedAt int64   `json:"createdAt"`
	Color     *string `json:"color,omitempty"`
}

// NewManifest returns an empty manifest stamped with now.
func NewManifest(now int64) *Manifest {
	return &Manifest{
		Version:   ManifestVersion,
		Files:     []FileEntry{},
		Folders:   []Folder{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy of m, so a mutation can be prepared without
// touching the committed state.
func (m *Manifest) Clone() *Manifest {
	if m == nil {
		return nil
	}
	out := *m
	out.Files = make([]FileEntry, len(m.Files))
	for i, f := range m.Files {
		out.Files[i] = f.Clone()
	}
	out.Folders = make([]Folder, len(m.Folders))
	for i, f := range m.Folders {
		out.Folders[i] = f.Clone()
	}
	return &out
}

// FileIndex returns the position of fileID in m.Files or -1.
func (m *Manifest) FileIndex(fileID string) int {
	return slices.IndexFunc(m.Files, func(f FileEntry) bool { return f.FileID == fileID })
}

// FolderIndex returns the position of folderID in m.Folders or -1.
func (m *Manifest) FolderIndex(folderID string) int {
	return slices.IndexFunc(m.Folders, func(f Folder) bool { return f.ID == folderID })
}

// Clone returns a deep copy of f.
func (f FileEntry) Clone() FileEntry {
	out := f
	out.FolderID = cloneString(f.FolderID)
	out.FileKey = slices.Clone(f.FileKey)
	out.FileNonce = slices.Clone(f.FileNonce)
	return out
}

// InFolder reports whether f lives in folderID; a nil folderID means root.
func (f FileEntry) InFolder(folderID *string) bool {
	return SameParent(f.FolderID, folderID)
}

// Clone returns a deep copy of f.
func (f Folder) Clone() Folder {
	out := f
	out.ParentID = cloneString(f.ParentID)
	out.Color = cloneString(f.Color)
	return out
}

// SameParent compares two optional folder references; nil is the root.
func SameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
