// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-sealed-drive/internal/config"
	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/internal/store"
	"github.com/MKhiriev/go-sealed-drive/internal/utils"
	"github.com/MKhiriev/go-sealed-drive/models"
)

// SharedPathPrefix is the route prefix of presigned downloads.
const SharedPathPrefix = "/shared/"

type blobServer struct {
	backend       store.Backend
	ttl           time.Duration
	tokenLifetime time.Duration
	allowed       map[string]struct{}
	now           func() time.Time
	logger        *logger.Logger
}

// NewBlobServer scopes backend per account. It initializes the presign
// hasher pool with cfg.HashKey.
func NewBlobServer(backend store.Backend, cfg config.ServerApp, log *logger.Logger) BlobServer {
	utils.InitHasherPool(cfg.HashKey)

	var allowed map[string]struct{}
	if len(cfg.AllowedKeys) > 0 {
		allowed = make(map[string]struct{}, len(cfg.AllowedKeys))
		for _, k := range cfg.AllowedKeys {
			allowed[strings.ToLower(strings.TrimSpace(k))] = struct{}{}
		}
	}

	return &blobServer{
		backend:       backend,
		ttl:           cfg.PresignTTL,
		tokenLifetime: cfg.TokenDuration,
		allowed:       allowed,
		now:           time.Now,
		logger:        log,
	}
}

func (b *blobServer) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, utils.TokenIssuer, b.tokenLifetime)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Str("func", "blobServer.ParseToken").Msg("token rejected")
		return models.Token{}, err
	}
	return token, nil
}

func (b *blobServer) Authorize(owner string) error {
	if err := validateOwner(owner); err != nil {
		return err
	}
	if b.allowed == nil {
		return nil
	}
	if _, ok := b.allowed[owner]; !ok {
		return ErrForbidden
	}
	return nil
}

func (b *blobServer) Get(ctx context.Context, owner, key string) ([]byte, string, error) {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return nil, "", err
	}
	return b.backend.GetVersioned(ctx, scoped)
}

func (b *blobServer) Put(ctx context.Context, owner, key string, data []byte) (string, error) {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return "", err
	}
	if err = b.backend.Put(ctx, scoped, data); err != nil {
		return "", err
	}
	return store.ETag(data), nil
}

func (b *blobServer) PutIfMatch(ctx context.Context, owner, key string, data []byte, etag string) (string, error) {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return "", err
	}
	return b.backend.PutIfMatch(ctx, scoped, data, etag)
}

func (b *blobServer) Delete(ctx context.Context, owner, key string) error {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return err
	}
	return b.backend.Delete(ctx, scoped)
}

func (b *blobServer) Copy(ctx context.Context, owner, src, dst string) error {
	scopedSrc, err := scopedKey(owner, src)
	if err != nil {
		return err
	}
	scopedDst, err := scopedKey(owner, dst)
	if err != nil {
		return err
	}
	return b.backend.Copy(ctx, scopedSrc, scopedDst)
}

func (b *blobServer) Presign(ctx context.Context, owner, key string) (string, int64, error) {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return "", 0, err
	}
	// a link to a missing blob would only fail for the recipient
	if _, err = b.backend.Get(ctx, scoped); err != nil {
		return "", 0, err
	}

	expires := b.now().Add(b.ttl).Unix()
	query := url.Values{}
	query.Set("exp", strconv.FormatInt(expires, 10))
	query.Set("sig", utils.SignBlobURL(scoped, expires))

	b.logger.Debug().Str("func", "*blobServer.Presign").Str("owner", owner).Int64("expires", expires).Msg("presigned blob")
	return SharedPathPrefix + owner + "/" + escapeKey(key) + "?" + query.Encode(), expires, nil
}

func (b *blobServer) OpenShared(ctx context.Context, owner, key string, expires int64, signature string) ([]byte, error) {
	scoped, err := scopedKey(owner, key)
	if err != nil {
		return nil, err
	}
	if !utils.VerifyBlobURL(scoped, expires, signature) {
		return nil, ErrLinkSignature
	}
	if b.now().Unix() > expires {
		return nil, ErrLinkExpired
	}
	return b.backend.Get(ctx, scoped)
}

func validateOwner(owner string) error {
	raw, err := hex.DecodeString(owner)
	if err != nil || len(raw) != models.PublicKeySize || owner != strings.ToLower(owner) {
		return fmt.Errorf("%w: owner is not a public key", ErrForbidden)
	}
	return nil
}

func scopedKey(owner, key string) (string, error) {
	if err := validateOwner(owner); err != nil {
		return "", err
	}
	if err := store.ValidateKey(key); err != nil {
		return "", validationError(err)
	}
	return owner + "/" + key, nil
}

func escapeKey(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
