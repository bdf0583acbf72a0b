package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/boundreal/internal/ir"
)

// ReadSession retrieves a single session by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadSession(ctx context.Context, id string) (ir.Session, error) {
	var sess ir.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_seq
		FROM sessions
		WHERE id = ?
	`, id).Scan(&sess.ID, &sess.Name, &sess.CreatedSeq)
	if err != nil {
		return ir.Session{}, err
	}
	return sess, nil
}

// ListSessions returns all sessions ordered by created_seq ASC, id ASC.
// Returns an empty slice (not nil) if the store has no sessions.
func (s *Store) ListSessions(ctx context.Context) ([]ir.Session, error) {
	rows, err := s.Query(ctx, `
		SELECT id, name, created_seq
		FROM sessions
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []ir.Session{}
	for rows.Next() {
		var sess ir.Session
		if err := rows.Scan(&sess.ID, &sess.Name, &sess.CreatedSeq); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadSteps returns all steps of a session ordered by seq ASC, id ASC.
// Returns an empty slice (not nil) if the session has no steps.
func (s *Store) ReadSteps(ctx context.Context, sessionID string) ([]ir.Step, error) {
	rows, err := s.Query(ctx, `
		SELECT id, session_id, seq, op, operands, result
		FROM steps
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query steps: %w", err)
	}
	defer rows.Close()

	steps := []ir.Step{}
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate steps: %w", err)
	}
	return steps, nil
}

// ReadStep retrieves a single step by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadStep(ctx context.Context, id string) (ir.Step, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, session_id, seq, op, operands, result
		FROM steps
		WHERE id = ?
	`, id)
	return scanStep(row)
}

// GetLastSeq returns the highest seq recorded in any session, or 0.
// A clock resumed with calc.NewClockAt(GetLastSeq()) never reuses a seq.
func (s *Store) GetLastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM (
			SELECT MAX(seq) AS seq FROM steps
			UNION ALL
			SELECT MAX(created_seq) AS seq FROM sessions
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("get last seq: %w", err)
	}
	return seq.Int64, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStep(row scanner) (ir.Step, error) {
	var (
		step     ir.Step
		operands string
		result   string
	)
	if err := row.Scan(&step.ID, &step.SessionID, &step.Seq, &step.Op, &operands, &result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ir.Step{}, err
		}
		return ir.Step{}, fmt.Errorf("scan step: %w", err)
	}

	var err error
	if step.Operands, err = unmarshalOperands(operands); err != nil {
		return ir.Step{}, err
	}
	if step.Result, err = unmarshalResult(result); err != nil {
		return ir.Step{}, err
	}
	return step, nil
}
