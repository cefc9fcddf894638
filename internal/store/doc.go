// Package store persists classification results in SQLite.
//
// Each broadcast date holds at most one run: saving a run replaces the
// previous run for the same date, including its speaker roles and blocks.
// The schema is created from embedded SQL migrations recorded in the
// schema_migrations table.
package store
