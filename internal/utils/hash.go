package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strconv"
	"sync"
)

// hasherPool holds HMAC-SHA256 instances keyed with the server hash key.
// Must be initialized via InitHasherPool before use.
var hasherPool sync.Pool

// InitHasherPool configures the pool with the key used to sign presigned
// download URLs.
//
//	utils.InitHasherPool(cfg.App.HashKey)
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes HMAC-SHA256 of data with a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// SignBlobURL returns the signature of a presigned download of key that
// expires at the given unix second.
func SignBlobURL(key string, expires int64) string {
	return hex.EncodeToString(Hash(presignInput(key, expires)))
}

// VerifyBlobURL reports whether signature authorizes a download of key until
// expires. Expiry itself is checked by the caller.
func VerifyBlobURL(key string, expires int64, signature string) bool {
	got, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return hmac.Equal(got, Hash(presignInput(key, expires)))
}

func presignInput(key string, expires int64) []byte {
	return []byte(key + "\n" + strconv.FormatInt(expires, 10))
}
