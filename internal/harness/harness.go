package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/store"
	"github.com/roach88/boundreal/internal/testutil"
)

// Harness is the test execution engine.
// It runs scenarios with a deterministic clock and session IDs.
type Harness struct {
	store    *store.Store
	machine  *calc.Machine
	clock    *testutil.DeterministicClock
	sessions *testutil.FixedSessionGenerator
	logger   *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh in-memory database for isolation. Cases
// share the database and the clock, so seq numbers continue from one case
// to the next.
//
// Execution flow per case:
//  1. Write the case session
//  2. Parse the program and run it, recording steps to the store
//  3. Read the trace back and replay it
//  4. Check the case expectations
//
// A returned error means the harness itself failed (store errors); case
// failures are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(store.MemoryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	clock := testutil.NewDeterministicClock()
	h := &Harness{
		store:    st,
		machine:  calc.New(st, calc.WithClock(clock)),
		clock:    clock,
		sessions: testutil.NewFixedSessionGenerator(scenario.Session),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)), // Suppress logs in tests
	}

	ctx := context.Background()
	result := NewResult(scenario.Name, h.sessions.Generate())
	for i, c := range scenario.Cases {
		cr, err := h.runCase(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("case %d (%s): %w", i, c.Name, err)
		}
		result.AddCase(*cr)
	}

	return result, nil
}

func (h *Harness) runCase(ctx context.Context, c Case) (*CaseResult, error) {
	sessionID := h.sessions.Generate() + "/" + c.Name
	sess := ir.Session{ID: sessionID, Name: c.Name, CreatedSeq: h.clock.Current()}
	if err := h.store.WriteSession(ctx, sess); err != nil {
		return nil, err
	}

	cr := &CaseResult{Name: c.Name, SessionID: sessionID}

	var res *calc.Result
	p, err := calc.ParseRPN(c.Name, c.Program.Normalized())
	if err == nil {
		res, err = h.machine.Run(ctx, sessionID, p)
	}
	if err != nil {
		var ee *calc.EvalError
		if !errors.As(err, &ee) || ee.Code == calc.ErrCodeRecordFailed {
			return nil, err
		}
		cr.ErrorCode = string(ee.Code)
		h.logger.Info("case failed to evaluate", "case", c.Name, "error", err)
	} else {
		v := res.Value
		cr.Value = &v
	}

	steps, err := h.store.ReadSteps(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cr.Steps = steps

	report, err := calc.Replay(sessionID, steps)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	for _, m := range report.Mismatches {
		cr.Failures = append(cr.Failures, fmt.Sprintf("seq %d %s replayed to %s, recorded %s", m.Seq, m.Op, m.Replayed, m.Recorded))
	}

	cr.Failures = append(cr.Failures, checkCase(c, cr, res)...)
	cr.Pass = len(cr.Failures) == 0

	h.logger.Info("case completed",
		"case", c.Name,
		"session", sessionID,
		"steps", len(steps),
		"pass", cr.Pass,
	)
	return cr, nil
}
