// Package harness runs conformance scenarios against the evaluator.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: algebra
//	description: "Algebraic identities of bounded reals"
//	session: algebra
//	cases:
//	  - name: inverse_zero
//	    program: [0, inv]
//	    expect: 1e20
//	    saturated: true
//	  - name: tolerance
//	    program: "0.1 0.2 +"
//	    expect: 0.3
//	    tolerance: 1e-12
//	  - name: underflow
//	    program: [add]
//	    expect_error: STACK_UNDERFLOW
//
// A program is a postfix token list or a single space-separated string.
// Literals and expectations accept the YAML spellings .nan, .inf and -.inf.
//
// # Case Checks
//
//   - expect: the result, compared exactly or within tolerance
//   - expect_error: the EvalError code the case must fail with
//   - steps: the number of steps recorded
//   - saturated: whether the result sits on the bound
//
// Every case additionally replays its stored trace and compares it with
// the steps the evaluator produced.
//
// # Deterministic Testing
//
// Each scenario executes against its own in-memory SQLite store with a
// testutil.DeterministicClock and a testutil.FixedSessionGenerator, so the
// same scenario always records byte-identical traces. RunWithGolden compares
// those traces against testdata/golden/<name>.golden.
package harness
