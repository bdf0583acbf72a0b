package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSession_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	sess := createTestSession(t, s, "s1", 0)
	require.NoError(t, s.WriteSession(ctx, sess))

	sessions, err := s.ListSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestWriteStep_RoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", 0)

	step := createTestStep("s1", 1, "mul", 1e20, 1e19, 1e19)
	require.NoError(t, s.WriteStep(ctx, step))

	got, err := s.ReadStep(ctx, step.ID)
	require.NoError(t, err)
	assert.Equal(t, step, got)
}

func TestWriteStep_StoresCanonicalText(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", 0)

	step := createTestStep("s1", 1, "div", 0.25, 1, 4)
	require.NoError(t, s.WriteStep(ctx, step))

	var operands, result string
	err := s.db.QueryRow("SELECT operands, result FROM steps WHERE id = ?", step.ID).Scan(&operands, &result)
	require.NoError(t, err)
	assert.Equal(t, `["1","4"]`, operands)
	assert.Equal(t, "0.25", result)
}

func TestWriteStep_Idempotent(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	createTestSession(t, s, "s1", 0)

	step := createTestStep("s1", 1, "neg", -2, 2)
	require.NoError(t, s.WriteStep(ctx, step))
	require.NoError(t, s.WriteStep(ctx, step))

	// A different step at an occupied seq is ignored too.
	other := createTestStep("s1", 1, "neg", -3, 3)
	require.NoError(t, s.WriteStep(ctx, other))

	steps, err := s.ReadSteps(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, steps, 1)
	assert.Equal(t, step.ID, steps[0].ID)
}

func TestWriteStep_RequiresSession(t *testing.T) {
	s := createTestStore(t)

	err := s.WriteStep(context.Background(), createTestStep("missing", 1, "neg", -1, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write step")
}
