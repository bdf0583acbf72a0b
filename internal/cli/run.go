package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/compiler"
	"github.com/roach88/boundreal/internal/numerical"
	"github.com/roach88/boundreal/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// Sessions allows overriding the session ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Sessions calc.SessionGenerator
}

// ProgramResult is the outcome of one compiled program.
type ProgramResult struct {
	Name      string                 `json:"name"`
	SessionID string                 `json:"session_id,omitempty"`
	Value     *numerical.BoundedReal `json:"value,omitempty"`
	Expect    *numerical.BoundedReal `json:"expect,omitempty"`
	Steps     int                    `json:"steps"`
	Pass      bool                   `json:"pass"`
	Error     string                 `json:"error,omitempty"`
}

// RunResult holds the outcome of every program in a directory.
type RunResult struct {
	Programs []ProgramResult `json:"programs"`
	Passed   int             `json:"passed"`
	Failed   int             `json:"failed"`
	Total    int             `json:"total"`
}

// RenderText prints one line per program and a summary.
func (r RunResult) RenderText(w io.Writer, verbose bool) {
	for _, p := range r.Programs {
		mark := "✓"
		if !p.Pass {
			mark = "✗"
		}
		switch {
		case p.Error != "":
			fmt.Fprintf(w, "%s %s: %s\n", mark, p.Name, p.Error)
		case p.Expect != nil && !p.Pass:
			fmt.Fprintf(w, "%s %s = %s (expected %s)\n", mark, p.Name, p.Value, p.Expect)
		default:
			fmt.Fprintf(w, "%s %s = %s\n", mark, p.Name, p.Value)
		}
		if verbose && p.SessionID != "" {
			fmt.Fprintf(w, "  session: %s\n", p.SessionID)
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed, %d total\n", r.Passed, r.Failed, r.Total)
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <programs-dir>",
		Short: "Evaluate CUE program files",
		Long: `Compile the CUE programs in a directory and evaluate each one.

Programs are declared under the program field:

  program: half: {
      description: "saturated input halves from the bound"
      steps: [1e30, 2, "/"]
      expect: 5e19
  }

A program with an expect value passes only if its result equals it exactly.
With --db each program runs in its own recorded session.

Exit codes:
  0 - All programs passed
  1 - One or more programs failed
  2 - Command error (compile errors, invalid paths, etc.)

Examples:
  boundreal run ./programs
  boundreal run --db ./trace.db ./programs --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrograms(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record steps to this SQLite database")

	return cmd
}

func runPrograms(opts *RunOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	slog.Info("compiling programs", "dir", dir)
	loaded, err := compiler.LoadDir(dir)
	if err != nil {
		return formatter.reportError(ExitCommandError, "failed to compile programs", err)
	}
	slog.Info("programs compiled", "programs", len(loaded.Programs), "files", loaded.FileCount)

	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, stop := signal.NotifyContext(parentCtx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var st *store.Store
	if opts.Database != "" {
		st, err = store.Open(opts.Database)
		if err != nil {
			return formatter.reportError(ExitCommandError, "failed to open database", err)
		}
		defer closeStore(st)
	}

	gen := opts.Sessions
	if gen == nil {
		gen = calc.UUIDv7Generator{}
	}

	result := RunResult{
		Programs: make([]ProgramResult, 0, len(loaded.Programs)),
		Total:    len(loaded.Programs),
	}
	for _, p := range loaded.Programs {
		pr, err := runProgram(ctx, st, gen, p)
		if err != nil {
			return formatter.reportError(ExitCommandError, fmt.Sprintf("program %s", p.Name), err)
		}
		result.Programs = append(result.Programs, *pr)
		if pr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if result.Failed > 0 {
		if err := formatter.Failure("FAILED", fmt.Sprintf("%d of %d programs failed", result.Failed, result.Total), result); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("%d programs failed", result.Failed))
	}
	return formatter.Success(result)
}

// runProgram evaluates one program. Evaluation errors are reported in the
// result; only store failures and cancellation are returned.
func runProgram(ctx context.Context, st *store.Store, gen calc.SessionGenerator, p *calc.Program) (*ProgramResult, error) {
	pr := &ProgramResult{Name: p.Name, Expect: p.Expect}

	machine := calc.New(nil)
	if st != nil {
		sess, err := newSession(ctx, st, gen.Generate(), p.Name)
		if err != nil {
			return nil, err
		}
		pr.SessionID = sess.sessionID
		machine = calc.New(st, calc.WithClock(sess.Clock))
	}

	res, err := machine.Run(ctx, pr.SessionID, p)
	if err != nil {
		if ctx.Err() != nil || calc.IsEvalError(err, calc.ErrCodeRecordFailed) {
			return nil, err
		}
		pr.Error = err.Error()
		return pr, nil
	}

	v := res.Value
	pr.Value = &v
	pr.Steps = len(res.Steps)
	pr.Pass = p.Expect == nil || v.Equal(*p.Expect)
	slog.Debug("program evaluated", "program", p.Name, "value", v.String(), "pass", pr.Pass)
	return pr, nil
}
