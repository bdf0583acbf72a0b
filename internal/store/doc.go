// Package store provides SQLite-backed durable storage for evaluation traces.
//
// The store is an append-only log of:
//   - Sessions: one row per evaluation run
//   - Steps: one row per applied operation, keyed by a content-addressed ID
//
// Every query that returns steps orders them by
// ORDER BY seq ASC, id ASC COLLATE BINARY, so reading a session back yields
// the same sequence on every run. There are no wall-clock columns.
//
// Operands are stored as canonical JSON arrays of decimal strings and
// results as BoundedReal.String(). Both decode back through
// numerical.Parse, which re-applies normalization.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Steps must reference an existing session
package store
