// Package ir provides the canonical record types shared by the evaluator,
// the store and the harness.
//
// Key design constraints:
//   - Raw floats never appear in canonical JSON; reals travel as IRReal and
//     are written as their decimal string form
//   - All JSON tags use snake_case
//   - Logical clocks (seq) only, never wall-clock timestamps
//   - Step IDs are content-addressed (SHA-256 over canonical JSON)
package ir
