// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// seqIDs issues "id-1", "id-2", ... so tests can predict identifiers.
type seqIDs struct {
	prefix string
	n      atomic.Int64
}

func (g *seqIDs) Generate() string {
	return fmt.Sprintf("%s-%d", g.prefix, g.n.Add(1))
}

// frozenClock always returns the same instant, which forces UpdatedAt to
// advance through the previous+1 rule.
func frozenClock() func() time.Time {
	t := time.UnixMilli(1_700_000_000_000)
	return func() time.Time { return t }
}

func newMasterKey(t *testing.T) []byte {
	t.Helper()
	pair, err := crypto.NewKeyManager().GenerateKeyPair()
	require.NoError(t, err)
	key, err := crypto.NewMasterKeyDeriver().DeriveMasterKey(pair.PrivateKey)
	require.NoError(t, err)
	return key
}

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, store.Backend, []byte) {
	t.Helper()
	blobs := store.NewMemoryBlobStore()
	key := newMasterKey(t)

	opts = append([]SessionOption{WithClock(frozenClock()), WithIDGenerator(&seqIDs{prefix: "id"})}, opts...)
	s := NewSession(blobs, opts...)
	require.NoError(t, s.Initialize(context.Background(), key))
	return s, blobs, key
}

func testFileEntry(id, name string, folderID *string) models.FileEntry {
	return models.FileEntry{
		FileID:    id,
		FileName:  name,
		Size:      5,
		MimeType:  "text/plain",
		FolderID:  folderID,
		FileKey:   make([]byte, 32),
		FileNonce: make([]byte, 12),
	}
}

func strPtr(s string) *string { return &s }

func uploadRequest(name string, content []byte) models.UploadRequest {
	return models.UploadRequest{FileName: name, MimeType: "text/plain", Content: content}
}
