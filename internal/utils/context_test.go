package utils

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextKeyString(t *testing.T) {
	assert.Equal(t, "publicKey", PublicKeyCtxKey.String())
}

func TestGetPublicKeyFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   string
		wantOK bool
	}{
		{name: "present", ctx: context.WithValue(context.Background(), PublicKeyCtxKey, "abcd"), want: "abcd", wantOK: true},
		{name: "missing", ctx: context.Background()},
		{name: "wrong type", ctx: context.WithValue(context.Background(), PublicKeyCtxKey, 42)},
		{name: "empty", ctx: context.WithValue(context.Background(), PublicKeyCtxKey, "")},
		{name: "different key", ctx: context.WithValue(context.Background(), contextKey("other"), "abcd")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetPublicKeyFromContext(tt.ctx)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
