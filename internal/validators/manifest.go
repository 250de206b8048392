// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"regexp"
	"strings"

	"github.com/MKhiriev/go-sealed-drive/models"
)

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets FileEntry.FileID or Folder.ID.
	FieldID = "id"

	// FieldName targets FileEntry.FileName or Folder.Name.
	FieldName = "name"

	// FieldSize targets FileEntry.Size.
	FieldSize = "size"

	// FieldFileKey targets FileEntry.FileKey and FileEntry.FileNonce together.
	FieldFileKey = "file_key"

	// FieldColor targets Folder.Color. A nil color is valid.
	FieldColor = "color"

	// FieldParent targets Folder.ParentID.
	FieldParent = "parent"
)

// MaxNameLength is the upper bound, in bytes, of file and folder names.
const MaxNameLength = 255

const (
	fileKeySize   = 32
	fileNonceSize = 12
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ManifestValidator validates the entries stored in a manifest:
// models.FileEntry and models.Folder, by value or by pointer.
type ManifestValidator struct {
}

// NewManifestValidator returns a ManifestValidator as a Validator.
func NewManifestValidator() Validator {
	return &ManifestValidator{}
}

// Validate dispatches to the type-specific check. With no fields every field
// of the type is checked.
func (v *ManifestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.FileEntry:
		return v.validateFileEntry(ctx, value, fields...)
	case *models.FileEntry:
		return v.validateFileEntry(ctx, *value, fields...)

	case models.Folder:
		return v.validateFolder(ctx, value, fields...)
	case *models.Folder:
		return v.validateFolder(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *ManifestValidator) validateFileEntry(ctx context.Context, file models.FileEntry, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldSize, FieldFileKey}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(file.FileID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := ValidateName(file.FileName); err != nil {
				return err
			}
		case FieldSize:
			if file.Size < 0 {
				return ErrInvalidSize
			}
		case FieldFileKey:
			if len(file.FileKey) != fileKeySize || len(file.FileNonce) != fileNonceSize {
				return ErrInvalidFileKey
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *ManifestValidator) validateFolder(ctx context.Context, folder models.Folder, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldName, FieldColor, FieldParent}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(folder.ID) == "" {
				return ErrEmptyID
			}
		case FieldName:
			if err := ValidateName(folder.Name); err != nil {
				return err
			}
		case FieldColor:
			if folder.Color != nil && !colorPattern.MatchString(*folder.Color) {
				return ErrInvalidColor
			}
		case FieldParent:
			if folder.ParentID != nil && *folder.ParentID == folder.ID {
				return ErrInvalidParent
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidateName checks a file or folder name: non-empty after trimming, at
// most MaxNameLength bytes, and free of "/" and NUL.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.ContainsAny(name, "/\x00") {
		return ErrInvalidNameChars
	}
	return nil
}
