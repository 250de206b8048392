// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/crypto"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
)

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func newTestStore(t *testing.T, handler http.HandlerFunc) *HTTPBlobStore {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewHTTPBlobStore(config.ClientAdapter{HTTPAddress: srv.URL, RequestTimeout: 5 * time.Second}, staticToken("tkn"), logger.Nop())
	require.NoError(t, err)
	return s
}

func TestNewHTTPBlobStore_Address(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr bool
	}{
		{name: "full url", address: "https://blobs.example:8443/"},
		{name: "host and port", address: "localhost:8080"},
		{name: "empty", address: "  ", wantErr: true},
		{name: "no host", address: "http://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewHTTPBlobStore(config.ClientAdapter{HTTPAddress: tt.address}, staticToken("t"), logger.Nop())
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAddress)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestHTTPBlobStore_GetVersioned(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/blobs/files/f1", r.URL.Path)
		assert.Equal(t, "Bearer tkn", r.Header.Get("Authorization"))
		w.Header().Set("ETag", `"abc"`)
		_, _ = w.Write([]byte("sealed"))
	})

	data, etag, err := s.GetVersioned(context.Background(), "files/f1")
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), data)
	assert.Equal(t, "abc", etag)
}

func TestHTTPBlobStore_Put(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("If-Match"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("payload"), body)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, s.Put(context.Background(), "manifest.enc", []byte("payload")))
}

func TestHTTPBlobStore_PutIfMatch(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Header.Get("If-Match") {
		case `"old"`:
			w.Header().Set("ETag", `"new"`)
			w.WriteHeader(http.StatusNoContent)
		case "":
			assert.Equal(t, "*", r.Header.Get("If-None-Match"))
			w.WriteHeader(http.StatusNoContent)
		default:
			utils.WriteError(w, "etag mismatch", http.StatusPreconditionFailed)
		}
	})
	ctx := context.Background()

	etag, err := s.PutIfMatch(ctx, "manifest.enc", []byte("v2"), "old")
	require.NoError(t, err)
	assert.Equal(t, "new", etag)

	etag, err = s.PutIfMatch(ctx, "manifest.enc", []byte("v1"), "")
	require.NoError(t, err)
	assert.Equal(t, store.ETag([]byte("v1")), etag, "falls back to the local tag")

	_, err = s.PutIfMatch(ctx, "manifest.enc", []byte("v3"), "stale")
	assert.ErrorIs(t, err, store.ErrVersionConflict)
	assert.Contains(t, err.Error(), "etag mismatch")
}

func TestHTTPBlobStore_StatusMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr []error
	}{
		{status: http.StatusNotFound, wantErr: []error{store.ErrBlobNotFound}},
		{status: http.StatusConflict, wantErr: []error{store.ErrVersionConflict}},
		{status: http.StatusBadRequest, wantErr: []error{store.ErrTransport, ErrBadRequest}},
		{status: http.StatusUnauthorized, wantErr: []error{store.ErrTransport, ErrUnauthorized}},
		{status: http.StatusForbidden, wantErr: []error{store.ErrTransport, ErrForbidden}},
		{status: http.StatusInternalServerError, wantErr: []error{store.ErrTransport, ErrInternalServerError}},
		{status: http.StatusBadGateway, wantErr: []error{store.ErrTransport}},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			_, err := s.Get(context.Background(), "files/f1")
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}

func TestHTTPBlobStore_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s, err := NewHTTPBlobStore(config.ClientAdapter{HTTPAddress: addr, RequestTimeout: time.Second}, staticToken("t"), logger.Nop())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "files/f1")
	assert.ErrorIs(t, err, store.ErrTransport)
}

func TestHTTPBlobStore_InvalidKey(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := s.Get(context.Background(), "../etc/passwd")
	assert.ErrorIs(t, err, store.ErrInvalidBlobKey)
	assert.ErrorIs(t, s.Copy(context.Background(), "/abs", "files/x"), store.ErrInvalidBlobKey)
}

func TestHTTPBlobStore_DeleteAndCopy(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodDelete && r.URL.Path == "/api/blobs/files/f1":
			w.WriteHeader(http.StatusNoContent)
		case r.Method == http.MethodPost && r.URL.Path == "/api/blobs/copy":
			var req CopyRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, CopyRequest{Src: "files/f1", Dst: "files/f2"}, req)
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "files/f1"))
	require.NoError(t, s.Copy(ctx, "files/f1", "files/f2"))
	assert.ErrorIs(t, s.Delete(ctx, "files/other"), store.ErrBlobNotFound)
}

func TestHTTPBlobStore_PresignAndFetch(t *testing.T) {
	var srvURL string
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/presign":
			var req PresignRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			_, _ = utils.WriteJSON(w, PresignResponse{URL: srvURL + "/shared/pk/" + req.Key + "?sig=s&exp=1", ExpiresAt: 1}, http.StatusOK)
		case "/shared/pk/files/f1":
			assert.Empty(t, r.Header.Get("Authorization"), "shared downloads carry no credentials")
			_, _ = w.Write([]byte("sealed"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	srvURL = s.client.BaseURL
	ctx := context.Background()

	u, err := s.Presign(ctx, "files/f1")
	require.NoError(t, err)

	data, err := s.FetchShared(ctx, u)
	require.NoError(t, err)
	assert.Equal(t, []byte("sealed"), data)

	_, err = s.FetchShared(ctx, "file:///etc/passwd")
	assert.ErrorIs(t, err, store.ErrTransport)
}

type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) { return "", errors.New("no key") }

func TestHTTPBlobStore_TokenError(t *testing.T) {
	s := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	s.tokens = failingTokens{}

	assert.Error(t, s.Put(context.Background(), "files/f1", []byte("x")))
}

func TestKeyPairTokenSource(t *testing.T) {
	keys := crypto.NewKeyManager()
	pair, err := keys.GenerateKeyPair()
	require.NoError(t, err)

	src := NewKeyPairTokenSource(keys, pair, 5*time.Minute)
	first, err := src.Token(context.Background())
	require.NoError(t, err)
	second, err := src.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second, "token is cached")

	parsed, err := utils.ValidateAndParseJWTToken(first, utils.TokenIssuer, 5*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, pair.PublicKey, parsed.PublicKey)

	// past the refresh margin a new token is issued
	ks := src.(*keyPairTokenSource)
	ks.now = func() time.Time { return time.Now().Add(10 * time.Minute) }
	_, err = src.Token(context.Background())
	require.NoError(t, err)
	assert.True(t, ks.expires.After(time.Now().Add(10*time.Minute)))
}
