// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors of request parsing. Callers can match against them with
// [errors.Is].
var (
	// ErrEmptyAuthorizationHeader is returned by the auth middleware when the
	// incoming request does not include an "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is not of the form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidToken covers expired, forged and malformed access tokens.
	ErrInvalidToken = errors.New("invalid access token")

	ErrInvalidJSON     = errors.New("invalid JSON was passed")
	ErrInvalidBlobPath = errors.New("invalid blob path")
	ErrInvalidETag     = errors.New("invalid `If-Match` header")
	ErrInvalidExpiry   = errors.New("invalid `exp` query parameter")
	ErrBlobTooLarge    = errors.New("blob is too large")
)
