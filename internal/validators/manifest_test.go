// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"strings"
	"testing"

	"github.com/MKhiriev/go-sealed-drive/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validFileEntry() models.FileEntry {
	return models.FileEntry{
		FileID:    "f1",
		FileName:  "a.txt",
		Size:      3,
		MimeType:  "text/plain",
		FileKey:   make([]byte, 32),
		FileNonce: make([]byte, 12),
	}
}

func validFolder() models.Folder {
	return models.Folder{ID: "d1", Name: "Docs", Color: strPtr("#a1B2c3")}
}

func TestNewManifestValidator(t *testing.T) {
	require.NotNil(t, NewManifestValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewManifestValidator()
	ctx := context.Background()

	file := validFileEntry()
	folder := validFolder()

	assert.NoError(t, v.Validate(ctx, file))
	assert.NoError(t, v.Validate(ctx, &file))
	assert.NoError(t, v.Validate(ctx, folder))
	assert.NoError(t, v.Validate(ctx, &folder))
	assert.ErrorIs(t, v.Validate(ctx, "nope"), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, file, "bogus"), ErrUnknownField)
}

func TestValidate_FileEntry(t *testing.T) {
	v := NewManifestValidator()

	tests := []struct {
		name    string
		mutate  func(*models.FileEntry)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(*models.FileEntry) {}},
		{name: "empty id", mutate: func(f *models.FileEntry) { f.FileID = " " }, wantErr: ErrEmptyID},
		{name: "empty name", mutate: func(f *models.FileEntry) { f.FileName = "" }, wantErr: ErrEmptyName},
		{name: "negative size", mutate: func(f *models.FileEntry) { f.Size = -1 }, wantErr: ErrInvalidSize},
		{name: "short key", mutate: func(f *models.FileEntry) { f.FileKey = []byte{1} }, wantErr: ErrInvalidFileKey},
		{name: "short nonce", mutate: func(f *models.FileEntry) { f.FileNonce = nil }, wantErr: ErrInvalidFileKey},
		{
			name:   "scoped to name ignores key",
			mutate: func(f *models.FileEntry) { f.FileKey = nil },
			fields: []string{FieldName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file := validFileEntry()
			tt.mutate(&file)
			err := v.Validate(context.Background(), file, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Folder(t *testing.T) {
	v := NewManifestValidator()

	tests := []struct {
		name    string
		mutate  func(*models.Folder)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Folder) {}},
		{name: "nil color", mutate: func(f *models.Folder) { f.Color = nil }},
		{name: "bad color", mutate: func(f *models.Folder) { f.Color = strPtr("red") }, wantErr: ErrInvalidColor},
		{name: "short color", mutate: func(f *models.Folder) { f.Color = strPtr("#fff") }, wantErr: ErrInvalidColor},
		{name: "own parent", mutate: func(f *models.Folder) { f.ParentID = strPtr(f.ID) }, wantErr: ErrInvalidParent},
		{name: "slash in name", mutate: func(f *models.Folder) { f.Name = "a/b" }, wantErr: ErrInvalidNameChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder := validFolder()
			tt.mutate(&folder)
			err := v.Validate(context.Background(), folder)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "plain", input: "report.pdf"},
		{name: "unicode", input: "отчёт.pdf"},
		{name: "blank", input: "   ", wantErr: ErrEmptyName},
		{name: "nul", input: "a\x00b", wantErr: ErrInvalidNameChars},
		{name: "max length", input: strings.Repeat("a", MaxNameLength)},
		{name: "too long", input: strings.Repeat("a", MaxNameLength+1), wantErr: ErrNameTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
