package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSteps_Ordering(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", 0)

	// Written out of order.
	for _, step := range []struct {
		seq int64
		op  string
	}{{3, "neg"}, {1, "inv"}, {2, "neg"}} {
		require.NoError(t, s.WriteStep(ctx, createTestStep("s1", step.seq, step.op, 1, 1)))
	}

	steps, err := s.ReadSteps(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, steps, 3)
	for i, step := range steps {
		assert.Equal(t, int64(i+1), step.Seq)
	}
	assert.Equal(t, "inv", steps[0].Op)
}

func TestReadSteps_FiltersBySession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "a", 0)
	createTestSession(t, s, "b", 0)

	require.NoError(t, s.WriteStep(ctx, createTestStep("a", 1, "neg", -1, 1)))
	require.NoError(t, s.WriteStep(ctx, createTestStep("b", 2, "neg", -2, 2)))

	steps, err := s.ReadSteps(ctx, "b")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, "-2", steps[0].Result.String())
}

func TestReadSteps_EmptyIsNotNil(t *testing.T) {
	s := createTestStore(t)

	steps, err := s.ReadSteps(context.Background(), "none")
	require.NoError(t, err)
	assert.NotNil(t, steps)
	assert.Empty(t, steps)
}

func TestReadStep_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadStep(context.Background(), "nope")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestReadSession(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	want := createTestSession(t, s, "s1", 7)

	got, err := s.ReadSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = s.ReadSession(ctx, "s2")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestListSessions_Ordering(t *testing.T) {
	s := createTestStore(t)
	createTestSession(t, s, "late", 9)
	createTestSession(t, s, "b", 2)
	createTestSession(t, s, "a", 2)

	sessions, err := s.ListSessions(context.Background())
	require.NoError(t, err)

	ids := make([]string, len(sessions))
	for i, sess := range sessions {
		ids[i] = sess.ID
	}
	assert.Equal(t, []string{"a", "b", "late"}, ids)
}

func TestGetLastSeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	seq, err := s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)

	createTestSession(t, s, "s1", 4)
	seq, err = s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), seq)

	require.NoError(t, s.WriteStep(ctx, createTestStep("s1", 12, "neg", -1, 1)))
	seq, err = s.GetLastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), seq)
}

func TestQuery_StepsByOp(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "a", 0)

	require.NoError(t, s.WriteStep(ctx, createTestStep("a", 1, "neg", -1, 1)))
	require.NoError(t, s.WriteStep(ctx, createTestStep("a", 2, "add", 3, 1, 2)))
	require.NoError(t, s.WriteStep(ctx, createTestStep("a", 3, "neg", -3, 3)))

	rows, err := s.Query(ctx, `SELECT seq FROM steps WHERE op = ? ORDER BY seq`, "neg")
	require.NoError(t, err)
	defer rows.Close()

	var seqs []int64
	for rows.Next() {
		var seq int64
		require.NoError(t, rows.Scan(&seq))
		seqs = append(seqs, seq)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []int64{1, 3}, seqs)
}
