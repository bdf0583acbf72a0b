package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
	"github.com/roach88/boundreal/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Database string
	Name     string

	// Sessions allows overriding the session ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Sessions calc.SessionGenerator
}

// EvalResult is the output of the eval command.
type EvalResult struct {
	Program   string                `json:"program"`
	SessionID string                `json:"session_id,omitempty"`
	Value     numerical.BoundedReal `json:"value"`
	Saturated bool                  `json:"saturated"`
	Steps     []ir.Step             `json:"steps"`
}

// RenderText prints the value, and the steps when verbose.
func (r EvalResult) RenderText(w io.Writer, verbose bool) {
	if verbose {
		for _, s := range r.Steps {
			fmt.Fprintf(w, "[%d] %s %s = %s\n", s.Seq, s.Op, formatOperands(s.Operands), s.Result)
		}
		if r.SessionID != "" {
			fmt.Fprintf(w, "session: %s\n", r.SessionID)
		}
	}
	fmt.Fprintln(w, r.Value)
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <token>...",
		Short: "Evaluate a postfix program",
		Long: `Evaluate a program written in postfix notation.

Tokens are numbers (pushed onto the stack) or operations:
  neg inv sq add sub mul div pow powi
and the symbols + - * / ^. The program must leave exactly one value.

With --db every applied operation is recorded as a step of a new session.
Seq numbers continue after the last one in the database.

Use -- before the program when it starts with a negative literal.

Examples:
  boundreal eval 1e30 2 /
  boundreal eval 0 inv
  boundreal eval --db ./trace.db --name square 3 2 powi
  boundreal eval -- -1e25 neg`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record steps to this SQLite database")
	cmd.Flags().StringVar(&opts.Name, "name", "eval", "program name recorded with the session")

	return cmd
}

func runEval(opts *EvalOptions, tokens []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	p, err := calc.ParseRPN(opts.Name, tokens)
	if err != nil {
		return formatter.reportError(ExitCommandError, "invalid program", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	machine := calc.New(nil)
	sessionID := ""
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return formatter.reportError(ExitCommandError, "failed to open database", err)
		}
		defer closeStore(st)

		gen := opts.Sessions
		if gen == nil {
			gen = calc.UUIDv7Generator{}
		}
		clock, err := newSession(ctx, st, gen.Generate(), p.Name)
		if err != nil {
			return formatter.reportError(ExitCommandError, "failed to start session", err)
		}
		sessionID = clock.sessionID
		machine = calc.New(st, calc.WithClock(clock.Clock))
	}

	res, err := machine.Run(ctx, sessionID, p)
	if err != nil {
		return formatter.reportError(ExitCommandError, "evaluation failed", err)
	}

	return formatter.Success(EvalResult{
		Program:   res.Program,
		SessionID: sessionID,
		Value:     res.Value,
		Saturated: res.Value.IsSaturated(),
		Steps:     res.Steps,
	})
}

// session is a stored session with the clock its steps are stamped by.
type session struct {
	*calc.Clock
	sessionID string
}

// newSession writes a session to st and returns a clock resumed after
// the last seq already in the database.
func newSession(ctx context.Context, st *store.Store, id, name string) (*session, error) {
	last, err := st.GetLastSeq(ctx)
	if err != nil {
		return nil, err
	}
	clock := calc.NewClockAt(last)
	if err := st.WriteSession(ctx, ir.Session{ID: id, Name: name, CreatedSeq: clock.Current()}); err != nil {
		return nil, err
	}
	slog.Debug("session started", "session", id, "name", name, "seq", last)
	return &session{Clock: clock, sessionID: id}, nil
}

func closeStore(st *store.Store) {
	if err := st.Close(); err != nil {
		slog.Error("error closing database", "error", err)
	}
}

func formatOperands(operands []numerical.BoundedReal) string {
	s := "("
	for i, o := range operands {
		if i > 0 {
			s += ", "
		}
		s += o.String()
	}
	return s + ")"
}
