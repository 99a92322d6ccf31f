// Package sqlstore implements the store interfaces on database/sql.
//
// Queries are written once with PostgreSQL $N placeholders and rebound per
// dialect, so the same stores serve PostgreSQL (pgx) in production and
// SQLite (modernc.org/sqlite) in development and tests. Every store accepts a
// store.DBTX and can be rebound to a transaction with WithTx.
package sqlstore
