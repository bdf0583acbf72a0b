// Package calc evaluates flat programs of named operations over bounded reals.
//
// A Program is a postfix sequence of instructions: pushes of literal values
// and applications of operations (neg, inv, sq, add, sub, mul, div, pow, powi).
// The Machine runs a program on a value stack, stamps every applied
// operation with a logical clock seq, and emits it as an ir.Step to an
// optional Recorder.
//
// Arithmetic never fails: all domain problems are absorbed by
// numerical.BoundedReal. The only errors a Machine returns describe a
// malformed program (unknown op, stack underflow, leftover values) or a
// failure of the recorder.
//
// Thread-safety model:
//   - Machine.Run may be called from several goroutines; steps from
//     concurrent runs interleave on the shared clock
//   - Programs are immutable once built
package calc
