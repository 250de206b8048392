// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by blob stores to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrBlobNotFound is returned when no blob is stored under the requested
	// key.
	ErrBlobNotFound = errors.New("blob not found")

	// ErrVersionConflict is returned by conditional writes when the stored
	// blob's ETag no longer matches the one the caller observed, or when a
	// blob exists although the caller required it to be absent.
	ErrVersionConflict = errors.New("blob version conflict")

	// ErrTransport is returned (wrapped) when the backing storage could not
	// be reached or answered with an unexpected failure.
	ErrTransport = errors.New("blob transport failure")

	// ErrTransientFailure accompanies [ErrTransport] when the backend
	// reported a condition that may clear on its own, such as a deadlock,
	// a serialization failure or a busy SQLite file. Stores never retry it.
	ErrTransientFailure = errors.New("transient storage failure")

	// ErrInvalidBlobKey is returned when a key is empty, absolute or tries
	// to escape the store namespace.
	ErrInvalidBlobKey = errors.New("invalid blob key")

	// ErrUnsupportedBackend is returned by [NewBlobStore] for a backend name
	// it cannot construct locally.
	ErrUnsupportedBackend = errors.New("unsupported blob backend")

	// ErrKeyBackupNotFound is returned by a [KeyStore] that holds no backup.
	ErrKeyBackupNotFound = errors.New("key backup not found")
)

// Low-level database operation errors. These are wrapped by the SQL blob
// store when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT, UPDATE or
	// DELETE fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning a result row fails.
	ErrScanningRow = errors.New("failed to scan blob row")
)
