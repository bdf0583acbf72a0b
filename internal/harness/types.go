package harness

import (
	"fmt"

	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name      string `json:"name"`
	SessionID string `json:"session_id"`
	Pass      bool   `json:"pass"`

	// Value is the program result; nil when evaluation failed.
	Value *numerical.BoundedReal `json:"value,omitempty"`

	// ErrorCode is the EvalError code when evaluation failed.
	ErrorCode string `json:"error_code,omitempty"`

	// Steps is the trace read back from the store.
	Steps []ir.Step `json:"steps"`

	// Failures lists every check that did not hold.
	Failures []string `json:"failures,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	Scenario string `json:"scenario"`
	Session  string `json:"session"`

	// Pass is true if every case passed.
	Pass bool `json:"pass"`

	Cases []CaseResult `json:"cases"`

	// Errors contains one message per case failure.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult(scenario, session string) *Result {
	return &Result{
		Scenario: scenario,
		Session:  session,
		Pass:     true,
		Cases:    []CaseResult{},
		Errors:   []string{},
	}
}

// AddCase appends a case outcome and folds its failures into the result.
func (r *Result) AddCase(c CaseResult) {
	r.Cases = append(r.Cases, c)
	for _, f := range c.Failures {
		r.AddError(fmt.Sprintf("%s: %s", c.Name, f))
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
