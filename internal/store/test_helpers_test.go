package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
)

// createTestStore creates a new file-backed store for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a session so steps can reference it.
func createTestSession(t *testing.T, s *Store, id string, createdSeq int64) ir.Session {
	t.Helper()
	sess := ir.Session{ID: id, Name: "test-" + id, CreatedSeq: createdSeq}
	if err := s.WriteSession(context.Background(), sess); err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	return sess
}

// createTestStep builds a step with a real content-addressed ID.
func createTestStep(sessionID string, seq int64, op string, result float64, operands ...float64) ir.Step {
	ops := make([]numerical.BoundedReal, len(operands))
	for i, f := range operands {
		ops[i] = numerical.New(f)
	}
	r := numerical.New(result)
	return ir.Step{
		ID:        ir.MustStepID(sessionID, seq, op, ops, r),
		SessionID: sessionID,
		Seq:       seq,
		Op:        op,
		Operands:  ops,
		Result:    r,
	}
}
