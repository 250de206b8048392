// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the blob server protocol.
//
// [HTTPBlobStore] implements every store interface (plain, versioned,
// deleter, copier) over HTTP, plus presigning and anonymous shared
// downloads. HTTP statuses are mapped by mapHTTPError onto the store
// sentinels so the service layer never sees a status code:
// 404 is store.ErrBlobNotFound, 409 and 412 are store.ErrVersionConflict
// and everything else is store.ErrTransport.
package adapter

import (
	"context"
)

// TokenSource returns a bearer token valid for at least one request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Blob server routes.
const (
	blobsPath   = "/api/blobs/"
	copyPath    = "/api/blobs/copy"
	presignPath = "/api/presign"
)

// CopyRequest is the body of POST /api/blobs/copy.
type CopyRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// PresignRequest is the body of POST /api/presign.
type PresignRequest struct {
	Key string `json:"key"`
}

// PresignResponse carries a download URL that needs no credentials until
// ExpiresAt (unix seconds).
type PresignResponse struct {
	URL       string `json:"url"`
	ExpiresAt int64  `json:"expiresAt"`
}
