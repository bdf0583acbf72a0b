package calc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
)

// DefaultMaxSteps bounds the number of op applications in one run.
const DefaultMaxSteps = 10000

// Recorder receives every step a Machine applies.
// Implemented by store.Store.
type Recorder interface {
	WriteStep(ctx context.Context, step ir.Step) error
}

// Sequencer hands out step seq numbers. Implemented by Clock and by
// testutil.DeterministicClock.
type Sequencer interface {
	Next() int64
	Current() int64
}

// Machine evaluates programs on a value stack.
type Machine struct {
	recorder Recorder
	clock    Sequencer
	maxSteps int
}

// MachineOption configures a Machine.
type MachineOption func(*Machine)

// WithClock shares a clock between machines or resumes a stored session.
func WithClock(c Sequencer) MachineOption {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithMaxSteps sets the per-run step quota.
func WithMaxSteps(maxSteps int) MachineOption {
	return func(m *Machine) {
		m.maxSteps = maxSteps
	}
}

// New creates a Machine. rec may be nil when steps need not be persisted.
func New(rec Recorder, opts ...MachineOption) *Machine {
	m := &Machine{
		recorder: rec,
		clock:    NewClock(),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Clock returns the machine's logical clock.
func (m *Machine) Clock() Sequencer {
	return m.clock
}

// Result is the outcome of one program run.
type Result struct {
	Program   string                `json:"program"`
	SessionID string                `json:"session_id"`
	Value     numerical.BoundedReal `json:"value"`
	Steps     []ir.Step             `json:"steps"`
}

// Run evaluates p and returns its single result value.
//
// The program is validated before anything is applied, so a malformed
// program records no steps. Each op application is stamped with the next
// clock seq, given a content-addressed ID, and passed to the recorder.
// Run checks ctx between instructions.
func (m *Machine) Run(ctx context.Context, sessionID string, p *Program) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if n := p.Ops(); n > m.maxSteps {
		return nil, p.errorAt(ErrCodeQuotaExceeded, -1, "program applies %d ops, quota is %d", n, m.maxSteps)
	}

	slog.Debug("program starting", "program", p.Name, "session", sessionID, "instructions", len(p.Instructions))

	stack := make([]numerical.BoundedReal, 0, len(p.Instructions))
	steps := make([]ir.Step, 0, p.Ops())

	for i, in := range p.Instructions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if in.IsPush() {
			stack = append(stack, in.Literal)
			continue
		}

		arity := in.Op.Arity()
		operands := make([]numerical.BoundedReal, arity)
		copy(operands, stack[len(stack)-arity:])
		stack = stack[:len(stack)-arity]

		value, err := in.Op.Apply(operands...)
		if err != nil {
			var ee *EvalError
			if errors.As(err, &ee) {
				ee.Program = p.Name
				ee.Index = i
			}
			return nil, err
		}
		stack = append(stack, value)

		step, err := m.newStep(sessionID, in.Op, operands, value)
		if err != nil {
			return nil, err
		}
		slog.Debug("step applied",
			"program", p.Name,
			"seq", step.Seq,
			"op", step.Op,
			"result", step.Result.String(),
		)

		if m.recorder != nil {
			if err := m.recorder.WriteStep(ctx, step); err != nil {
				return nil, &EvalError{
					Code:    ErrCodeRecordFailed,
					Message: "recorder rejected step",
					Program: p.Name,
					Index:   i,
					Err:     err,
				}
			}
		}
		steps = append(steps, step)
	}

	slog.Debug("program finished", "program", p.Name, "result", stack[0].String(), "steps", len(steps))

	return &Result{
		Program:   p.Name,
		SessionID: sessionID,
		Value:     stack[0],
		Steps:     steps,
	}, nil
}

func (m *Machine) newStep(sessionID string, op Op, operands []numerical.BoundedReal, result numerical.BoundedReal) (ir.Step, error) {
	seq := m.clock.Next()
	id, err := ir.StepID(sessionID, seq, string(op), operands, result)
	if err != nil {
		return ir.Step{}, fmt.Errorf("step %d: %w", seq, err)
	}
	return ir.Step{
		ID:        id,
		SessionID: sessionID,
		Seq:       seq,
		Op:        string(op),
		Operands:  operands,
		Result:    result,
	}, nil
}
