package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/boundreal/internal/calc"
)

var _ calc.SessionGenerator = (*FixedSessionGenerator)(nil)

func TestFixedSessionGenerator(t *testing.T) {
	g := NewFixedSessionGenerator("abc")
	assert.Equal(t, "abc", g.Generate())
	assert.Equal(t, "abc", g.Generate())
}

func TestFixedSessionGenerator_Default(t *testing.T) {
	assert.Equal(t, DefaultSessionID, NewFixedSessionGenerator("").Generate())
}
