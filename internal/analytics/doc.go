// Package analytics implements the aggregation and hierarchical-join core
// of the pipeline: numeric coercion, SOC parent-key extraction, state-level
// and employment-weighted aggregation, the two skill/wage join modes, and
// the named-view registry.
//
// Every function in this package is pure and total. Evaluation takes an
// immutable domain.Snapshot and returns a result set; malformed numerics
// coerce to nil, zero weighting denominators yield nil metrics, unmatched
// hierarchy keys drop rows. Nothing here panics on data and nothing here
// mutates shared state, so concurrent evaluations need no locking.
package analytics
