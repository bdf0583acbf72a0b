package store

import (
	"context"
	"fmt"

	"github.com/roach88/boundreal/internal/ir"
)

// WriteSession inserts a session record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteSession(ctx context.Context, sess ir.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, name, created_seq)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		sess.ID,
		sess.Name,
		sess.CreatedSeq,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// WriteStep inserts a step record. It implements calc.Recorder.
//
// Uses ON CONFLICT DO NOTHING for idempotency: rewriting the same step, or
// a second step at an occupied (session_id, seq), is silently ignored.
// The session referenced by SessionID must exist (foreign key constraint).
func (s *Store) WriteStep(ctx context.Context, step ir.Step) error {
	operandsJSON, err := marshalOperands(step.Operands)
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO steps (id, session_id, seq, op, operands, result)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		step.ID,
		step.SessionID,
		step.Seq,
		step.Op,
		operandsJSON,
		step.Result.String(),
	)
	if err != nil {
		return fmt.Errorf("write step: %w", err)
	}
	return nil
}
