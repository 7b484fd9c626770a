// Package store persists simulation aggregates.
//
// Two backends exist: a single-file CBOR blob that the report command reads,
// and a SQLite archive that keeps every recorded run for later comparison.
package store
