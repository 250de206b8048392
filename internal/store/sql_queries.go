// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

const (
	blobsTable = "blobs"

	// upsertBlobSuffix works on PostgreSQL and SQLite >= 3.24.
	upsertBlobSuffix = "ON CONFLICT (key) DO UPDATE SET data = excluded.data, etag = excluded.etag, updated_at = excluded.updated_at"
)

func buildGetBlobQuery(ph sq.PlaceholderFormat, key string) (string, []any, error) {
	query, args, err := sq.Select("data", "etag").
		From(blobsTable).
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpsertBlobQuery(ph sq.PlaceholderFormat, key string, data []byte, etag string, now int64) (string, []any, error) {
	query, args, err := sq.Insert(blobsTable).
		Columns("key", "data", "etag", "updated_at").
		Values(key, data, etag, now).
		Suffix(upsertBlobSuffix).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildInsertBlobQuery(ph sq.PlaceholderFormat, key string, data []byte, etag string, now int64) (string, []any, error) {
	query, args, err := sq.Insert(blobsTable).
		Columns("key", "data", "etag", "updated_at").
		Values(key, data, etag, now).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildUpdateBlobIfMatchQuery(ph sq.PlaceholderFormat, key string, data []byte, etag, prevETag string, now int64) (string, []any, error) {
	query, args, err := sq.Update(blobsTable).
		Set("data", data).
		Set("etag", etag).
		Set("updated_at", now).
		Where(sq.Eq{"key": key, "etag": prevETag}).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteBlobQuery(ph sq.PlaceholderFormat, key string) (string, []any, error) {
	query, args, err := sq.Delete(blobsTable).
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildCopyBlobQuery copies src to dst inside the database with
// INSERT ... SELECT so the ciphertext never leaves the server.
func buildCopyBlobQuery(ph sq.PlaceholderFormat, src, dst string, now int64) (string, []any, error) {
	selectSrc := sq.Select().
		Column(sq.Expr("CAST(? AS TEXT)", dst)).
		Columns("data", "etag").
		Column(sq.Expr("CAST(? AS BIGINT)", now)).
		From(blobsTable).
		Where(sq.Eq{"key": src})

	query, args, err := sq.Insert(blobsTable).
		Columns("key", "data", "etag", "updated_at").
		Select(selectSrc).
		Suffix(upsertBlobSuffix).
		PlaceholderFormat(ph).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
