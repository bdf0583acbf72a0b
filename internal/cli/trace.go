package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Op       string // optional - filter to a specific op
	Verify   bool   // replay the session and compare results
}

// SessionList is the output of trace without a session argument.
type SessionList struct {
	Sessions []ir.Session `json:"sessions"`
}

// RenderText prints one session per line.
func (l SessionList) RenderText(w io.Writer, _ bool) {
	if len(l.Sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return
	}
	for _, s := range l.Sessions {
		fmt.Fprintf(w, "%s  %s  (seq %d)\n", s.ID, s.Name, s.CreatedSeq)
	}
}

// TraceResult holds the steps of one session.
type TraceResult struct {
	Session ir.Session         `json:"session"`
	Steps   []ir.Step          `json:"steps"`
	Stats   TraceStats         `json:"stats"`
	Replay  *calc.ReplayReport `json:"replay,omitempty"`
}

// TraceStats holds summary statistics for the trace.
type TraceStats struct {
	TotalSteps int            `json:"total_steps"`
	ByOp       map[string]int `json:"by_op"`
	Saturated  int            `json:"saturated"`
}

// RenderText prints the timeline, then stats and the replay verdict.
func (r TraceResult) RenderText(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "Session: %s (%s)\n\n", r.Session.ID, r.Session.Name)
	if len(r.Steps) == 0 {
		fmt.Fprintln(w, "No steps recorded.")
	}
	for _, s := range r.Steps {
		fmt.Fprintf(w, "[%d] %s %s = %s\n", s.Seq, s.Op, formatOperands(s.Operands), s.Result)
		if verbose {
			fmt.Fprintf(w, "    id: %s\n", s.ID)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Steps: %d, saturated results: %d\n", r.Stats.TotalSteps, r.Stats.Saturated)

	if r.Replay != nil {
		if r.Replay.OK() {
			fmt.Fprintf(w, "✓ Replay matches %d recorded steps\n", r.Replay.Steps)
			return
		}
		for _, m := range r.Replay.Mismatches {
			if m.Replayed.Equal(m.Recorded) {
				fmt.Fprintf(w, "✗ seq %d: step ID does not match its content\n", m.Seq)
				continue
			}
			fmt.Fprintf(w, "✗ seq %d: %s replayed to %s, recorded %s\n", m.Seq, m.Op, m.Replayed, m.Recorded)
		}
	}
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [session-id]",
		Short: "Show recorded steps",
		Long: `Show the steps recorded for a session.

Without a session ID, lists every session in the database.
With --verify, every step is recomputed from its operands and checked
against the recorded result and step ID.

Exit codes:
  0 - Success
  1 - Replay found a mismatch
  2 - Command error (unknown session, database errors, etc.)

Examples:
  boundreal trace --db ./trace.db
  boundreal trace --db ./trace.db 0192f0c1-...
  boundreal trace --db ./trace.db 0192f0c1-... --op div
  boundreal trace --db ./trace.db 0192f0c1-... --verify --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListSessions(opts, cmd)
			}
			return runTrace(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Op, "op", "", "filter to a specific op")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "replay steps and check recorded results")

	return cmd
}

func runListSessions(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to open database", err)
	}
	defer closeStore(st)

	sessions, err := st.ListSessions(context.Background())
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to list sessions", err)
	}
	return formatter.Success(SessionList{Sessions: sessions})
}

func runTrace(opts *TraceOptions, sessionID string, cmd *cobra.Command) error {
	ctx := context.Background()
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to open database", err)
	}
	defer closeStore(st)

	sess, err := st.ReadSession(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		if outErr := formatter.Error("E_NOT_FOUND", fmt.Sprintf("session not found: %s", sessionID), nil); outErr != nil {
			return outErr
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", sessionID))
	}
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to read session", err)
	}

	steps, err := st.ReadSteps(ctx, sessionID)
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to read steps", err)
	}

	result := TraceResult{Session: sess}
	if opts.Verify {
		report, err := calc.Replay(sessionID, steps)
		if err != nil {
			return formatter.reportError(ExitCommandError, "failed to replay session", err)
		}
		result.Replay = &report
	}

	result.Steps = filterSteps(steps, opts.Op)
	result.Stats = buildStats(result.Steps)

	if result.Replay != nil && !result.Replay.OK() {
		msg := fmt.Sprintf("%d of %d steps diverge on replay", len(result.Replay.Mismatches), result.Replay.Steps)
		if err := formatter.Failure("E_REPLAY_MISMATCH", msg, result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return formatter.Success(result)
}

// filterSteps keeps steps whose op matches op, accepting symbol aliases.
func filterSteps(steps []ir.Step, op string) []ir.Step {
	if op == "" {
		return steps
	}
	want := calc.Op(op)
	if parsed, ok := calc.ParseOp(op); ok {
		want = parsed
	}
	filtered := make([]ir.Step, 0, len(steps))
	for _, s := range steps {
		if s.Op == string(want) {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func buildStats(steps []ir.Step) TraceStats {
	stats := TraceStats{TotalSteps: len(steps), ByOp: make(map[string]int)}
	for _, s := range steps {
		stats.ByOp[s.Op]++
		if s.Result.IsSaturated() {
			stats.Saturated++
		}
	}
	return stats
}
