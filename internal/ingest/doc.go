// Package ingest parses the downloaded OEWS and O*NET workbooks into typed
// records: header normalization to snake_case, lowercase string values, the
// O*NET column renames, and defensive numeric coercion on every measurement
// field.
package ingest
