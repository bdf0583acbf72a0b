package calc

import (
	"fmt"

	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
)

// ReplayMismatch describes one step that did not reproduce.
type ReplayMismatch struct {
	Seq      int64                 `json:"seq"`
	Op       string                `json:"op"`
	Recorded numerical.BoundedReal `json:"recorded"`
	Replayed numerical.BoundedReal `json:"replayed"`

	// BadID is set when the stored ID differs from the recomputed one.
	BadID bool `json:"bad_id,omitempty"`
}

// ReplayReport summarizes a replay.
type ReplayReport struct {
	SessionID  string           `json:"session_id"`
	Steps      int              `json:"steps"`
	Mismatches []ReplayMismatch `json:"mismatches"`
}

// OK reports whether every step reproduced.
func (r ReplayReport) OK() bool {
	return len(r.Mismatches) == 0
}

// Replay re-applies every recorded step to its recorded operands.
//
// A trace is consistent when each stored result equals a fresh application
// of its op and each stored ID equals the ID recomputed from its fields.
// Replay never writes and reports every divergence instead of stopping at
// the first. It returns an error only for steps that cannot be applied at
// all: an unknown op, a wrong operand count, or a seq out of order.
func Replay(sessionID string, steps []ir.Step) (ReplayReport, error) {
	report := ReplayReport{
		SessionID:  sessionID,
		Steps:      len(steps),
		Mismatches: []ReplayMismatch{},
	}

	var lastSeq int64
	for i, step := range steps {
		if step.Seq <= lastSeq {
			return report, fmt.Errorf("replay %s: step %d has seq %d after seq %d", sessionID, i, step.Seq, lastSeq)
		}
		lastSeq = step.Seq

		op, ok := ParseOp(step.Op)
		if !ok {
			return report, newEvalError(ErrCodeUnknownOp, i, "unknown op %q at seq %d", step.Op, step.Seq)
		}
		replayed, err := op.Apply(step.Operands...)
		if err != nil {
			return report, fmt.Errorf("replay %s: seq %d: %w", sessionID, step.Seq, err)
		}

		id, err := ir.StepID(step.SessionID, step.Seq, step.Op, step.Operands, replayed)
		if err != nil {
			return report, err
		}

		if !replayed.Equal(step.Result) || id != step.ID {
			report.Mismatches = append(report.Mismatches, ReplayMismatch{
				Seq:      step.Seq,
				Op:       step.Op,
				Recorded: step.Result,
				Replayed: replayed,
				BadID:    id != step.ID,
			})
		}
	}
	return report, nil
}
