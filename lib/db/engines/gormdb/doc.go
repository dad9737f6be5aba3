// Package gormdb implements the db.KVDB interface as a single sql table accessed
// through gorm. Every entry is one row (key blob primary key, value blob), writes
// are upserts (INSERT ... ON CONFLICT DO UPDATE) and reads use Find so that
// missing keys are not logged as errors.
//
// NewSQLiteDB and NewInMemorySQLiteDB open sqlite databases and limit the
// connection pool to a single connection, since sqlite allows only one writer.
// NewGormDB accepts any opened gorm connection.
//
// Save streams all rows inside one transaction in the shared engine snapshot
// format (see lib/db/util); Load replaces the table content in one transaction.
package gormdb
