// Package utils holds small helpers shared by the client and the blob
// server: request context keys, presigned URL signatures, JWT handling,
// JSON responses, the resty client wrapper and identifier generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String implements fmt.Stringer.
func (c contextKey) String() string {
	return string(c)
}

// PublicKeyCtxKey stores the authenticated account public key (hex) in a
// request context.
//
//	ctx := context.WithValue(ctx, utils.PublicKeyCtxKey, "9f1c...")
var PublicKeyCtxKey = contextKey("publicKey")

// GetPublicKeyFromContext returns the authenticated account public key and
// whether it was present with the expected type.
func GetPublicKeyFromContext(ctx context.Context) (string, bool) {
	publicKey, ok := ctx.Value(PublicKeyCtxKey).(string)
	return publicKey, ok && publicKey != ""
}
