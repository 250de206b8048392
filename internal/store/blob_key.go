// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// maxBlobKeyLength bounds keys so they fit file names and SQL columns.
const maxBlobKeyLength = 512

// ETag returns the version tag of data: the hex SHA-256 of its bytes.
func ETag(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ValidateKey rejects keys that are empty, absolute, contain "." or ".."
// segments, backslashes or NUL bytes.
func ValidateKey(key string) error {
	if key == "" || len(key) > maxBlobKeyLength {
		return fmt.Errorf("%w: %q", ErrInvalidBlobKey, key)
	}
	if strings.HasPrefix(key, "/") || strings.ContainsAny(key, "\\\x00") {
		return fmt.Errorf("%w: %q", ErrInvalidBlobKey, key)
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return fmt.Errorf("%w: %q", ErrInvalidBlobKey, key)
		}
	}
	return nil
}
