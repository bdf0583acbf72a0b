package harness

import (
	"fmt"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/numerical"
)

// checkCase evaluates every expectation of c against its outcome and
// returns one message per failed check.
func checkCase(c Case, cr *CaseResult, res *calc.Result) []string {
	var failures []string

	switch {
	case c.ExpectError != "":
		if cr.ErrorCode != c.ExpectError {
			failures = append(failures, fmt.Sprintf("expected error %s, got %s", c.ExpectError, describe(cr)))
		}
	case cr.ErrorCode != "":
		failures = append(failures, fmt.Sprintf("unexpected error %s", cr.ErrorCode))
	case c.Expect != nil:
		if !realsMatch(*cr.Value, c.Expect.BoundedReal, c.Tolerance) {
			failures = append(failures, fmt.Sprintf("expected %s, got %s", c.Expect, cr.Value))
		}
	}

	if c.Steps != nil && len(cr.Steps) != *c.Steps {
		failures = append(failures, fmt.Sprintf("expected %d steps, got %d", *c.Steps, len(cr.Steps)))
	}

	if c.Saturated != nil {
		if cr.Value == nil {
			failures = append(failures, "saturated: no result")
		} else if cr.Value.IsSaturated() != *c.Saturated {
			failures = append(failures, fmt.Sprintf("expected saturated=%t for %s", *c.Saturated, cr.Value))
		}
	}

	if res != nil {
		failures = append(failures, compareTraces(res, cr)...)
	}

	return failures
}

// realsMatch compares exactly, or within tol as an absolute or relative
// difference.
func realsMatch(got, want numerical.BoundedReal, tol float64) bool {
	if tol == 0 {
		return got.Equal(want)
	}
	return scalar.EqualWithinAbsOrRel(got.Float64(), want.Float64(), tol, tol)
}

// compareTraces checks that the store returned exactly the steps the
// machine produced.
func compareTraces(res *calc.Result, cr *CaseResult) []string {
	if len(res.Steps) != len(cr.Steps) {
		return []string{fmt.Sprintf("evaluated %d steps, stored %d", len(res.Steps), len(cr.Steps))}
	}
	var failures []string
	for i := range res.Steps {
		if res.Steps[i].ID != cr.Steps[i].ID {
			failures = append(failures, fmt.Sprintf("stored step %d has ID %s, evaluated %s", i, cr.Steps[i].ID, res.Steps[i].ID))
		}
	}
	return failures
}

func describe(cr *CaseResult) string {
	if cr.ErrorCode != "" {
		return cr.ErrorCode
	}
	return "result " + cr.Value.String()
}
