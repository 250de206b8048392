// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
)

// sqlBlobStore stores blobs in the "blobs" table of a PostgreSQL or SQLite
// database. The ETag column lets conditional writes run as a single
// UPDATE ... WHERE etag = ? statement.
type sqlBlobStore struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewSQLBlobStore constructs a [Backend] on top of an already migrated
// connection.
func NewSQLBlobStore(db *DB, log *logger.Logger) Backend {
	return &sqlBlobStore{DB: db, logger: log, now: time.Now}
}

func (s *sqlBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, _, err := s.GetVersioned(ctx, key)
	return data, err
}

func (s *sqlBlobStore) GetVersioned(ctx context.Context, key string) ([]byte, string, error) {
	if err := ValidateKey(key); err != nil {
		return nil, "", err
	}

	query, args, err := buildGetBlobQuery(s.placeholder, key)
	if err != nil {
		return nil, "", err
	}

	var (
		data []byte
		etag string
	)
	err = s.QueryRowContext(ctx, query, args...).Scan(&data, &etag)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrBlobNotFound
	}
	if err != nil {
		s.logger.Err(err).
			Str("func", "sqlBlobStore.GetVersioned").
			Str("key", key).
			Msg("failed to read blob")
		return nil, "", fmt.Errorf("%w: %w: %w", ErrTransport, ErrScanningRow, err)
	}
	return data, etag, nil
}

func (s *sqlBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	query, args, err := buildUpsertBlobQuery(s.placeholder, key, data, ETag(data), s.now().UnixMilli())
	if err != nil {
		return err
	}

	_, err = s.exec(ctx, "sqlBlobStore.Put", query, args...)
	return err
}

func (s *sqlBlobStore) PutIfMatch(ctx context.Context, key string, data []byte, etag string) (string, error) {
	if err := ValidateKey(key); err != nil {
		return "", err
	}

	newETag := ETag(data)
	now := s.now().UnixMilli()

	var (
		query string
		args  []any
		err   error
	)
	if etag == "" {
		query, args, err = buildInsertBlobQuery(s.placeholder, key, data, newETag, now)
	} else {
		query, args, err = buildUpdateBlobIfMatchQuery(s.placeholder, key, data, newETag, etag, now)
	}
	if err != nil {
		return "", err
	}

	affected, err := s.exec(ctx, "sqlBlobStore.PutIfMatch", query, args...)
	if err != nil {
		return "", err
	}
	if affected == 0 {
		return "", ErrVersionConflict
	}
	return newETag, nil
}

func (s *sqlBlobStore) Delete(ctx context.Context, key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	query, args, err := buildDeleteBlobQuery(s.placeholder, key)
	if err != nil {
		return err
	}

	affected, err := s.exec(ctx, "sqlBlobStore.Delete", query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBlobNotFound
	}
	return nil
}

func (s *sqlBlobStore) Copy(ctx context.Context, src, dst string) error {
	if err := ValidateKey(src); err != nil {
		return err
	}
	if err := ValidateKey(dst); err != nil {
		return err
	}

	query, args, err := buildCopyBlobQuery(s.placeholder, src, dst, s.now().UnixMilli())
	if err != nil {
		return err
	}

	affected, err := s.exec(ctx, "sqlBlobStore.Copy", query, args...)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBlobNotFound
	}
	return nil
}

func (s *sqlBlobStore) Close() error {
	return s.DB.Close()
}

// exec runs a DML statement once. Unique violations surface as
// [ErrVersionConflict]; errors the classifier marks as retryable also wrap
// [ErrTransientFailure] so the caller can decide to try again.
func (s *sqlBlobStore) exec(ctx context.Context, fn, query string, args ...any) (int64, error) {
	res, err := s.ExecContext(ctx, query, args...)
	if err != nil {
		if s.errorClassificator == nil {
			return 0, fmt.Errorf("%w: %w: %w", ErrTransport, ErrExecutingStatement, err)
		}
		if s.errorClassificator.IsUniqueViolation(err) {
			return 0, ErrVersionConflict
		}

		retryable := s.errorClassificator.Classify(err) == Retryable
		s.logger.Err(err).
			Str("func", fn).
			Bool("retryable", retryable).
			Msg("failed to execute statement")
		if retryable {
			return 0, fmt.Errorf("%w: %w: %w: %w", ErrTransport, ErrTransientFailure, ErrExecutingStatement, err)
		}
		return 0, fmt.Errorf("%w: %w: %w", ErrTransport, ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w: %w", ErrTransport, ErrExecutingStatement, err)
	}
	return affected, nil
}
