// Package store persists expanded tables in a SQLite database.
//
// Each table is saved twice: once as an encoded table blob, which is the
// source of truth for LoadTable, and once as per-id summary rows, which can be
// queried without decoding the blob.
//
//	tables(name PK, row_count, run_count, compression, size, created_at, data)
//	summaries(table_name, ord, id, trials, heads)  PK(table_name, ord)
//
// The database is opened with the pure-Go modernc.org/sqlite driver.
package store
