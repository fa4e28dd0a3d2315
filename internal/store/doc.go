// Package store persists the pipeline's two-layer relational model in
// Postgres: schema raw holds the workbook tables as text, schema curated
// holds the typed selections plus the three analysis views. The view DDL
// mirrors the pure evaluators in internal/analytics; the Go functions are
// the reference semantics.
package store
