// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-sealed-drive/internal/logger"
	"github.com/MKhiriev/go-sealed-drive/migrations"
)

// Goose dialect names understood by [migrations.Migrate].
const (
	dialectPostgres = "pgx"
	dialectSQLite   = "sqlite3"
)

// DB wraps a *sql.DB together with the driver specific pieces the SQL blob
// store needs: placeholder style, migration dialect and error classifier.
type DB struct {
	*sql.DB
	dialect            string
	placeholder        sq.PlaceholderFormat
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Migrate applies pending schema migrations for the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// ErrorClassificator decides whether a driver error may be retried and
// whether it is a uniqueness violation.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}
