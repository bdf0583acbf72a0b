package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/boundreal/internal/ir"
)

// Snapshot returns the canonical trace of a result: every case with its
// outcome and recorded steps, without step IDs or session IDs per step.
func Snapshot(result *Result) ([]byte, error) {
	cases := make(ir.IRArray, len(result.Cases))
	for i, c := range result.Cases {
		steps := make(ir.IRArray, len(c.Steps))
		for j, s := range c.Steps {
			steps[j] = s.CanonicalFields()
		}

		obj := ir.IRObject{
			"name":  ir.IRString(c.Name),
			"steps": steps,
		}
		if c.Value != nil {
			obj["result"] = ir.IRReal(*c.Value)
		}
		if c.ErrorCode != "" {
			obj["error"] = ir.IRString(c.ErrorCode)
		}
		cases[i] = obj
	}

	return ir.MarshalCanonical(ir.IRObject{
		"scenario": ir.IRString(result.Scenario),
		"session":  ir.IRString(result.Session),
		"cases":    cases,
	})
}

// RunWithGolden executes a scenario and compares the trace against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check Pass. Test failure (via
// goldie) occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	traceJSON, err := Snapshot(result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, traceJSON)

	return nil
}
