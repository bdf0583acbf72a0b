package ir

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/boundreal/internal/numerical"
)

func TestStepJSONFieldNaming(t *testing.T) {
	step := Step{
		ID:        "abc",
		SessionID: "s",
		Seq:       1,
		Op:        "mul",
		Operands:  reals(1e19, 1e19),
		Result:    numerical.New(1e20),
	}

	data, err := json.Marshal(step)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"abc","session_id":"s","seq":1,"op":"mul","operands":[1e19,1e19],"result":1e20}`,
		string(data))
}

func TestStepJSONRoundTrip(t *testing.T) {
	step := Step{ID: "x", SessionID: "s", Seq: 4, Op: "inv", Operands: reals(0), Result: numerical.New(1e20)}

	data, err := json.Marshal(step)
	require.NoError(t, err)

	var back Step
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, step, back)
}

func TestStepCanonicalFields(t *testing.T) {
	step := Step{ID: "ignored", SessionID: "ignored", Seq: 2, Op: "pow", Operands: reals(2, 10), Result: numerical.New(1024)}

	data, err := MarshalCanonical(step.CanonicalFields())
	require.NoError(t, err)
	assert.Equal(t, `{"op":"pow","operands":["2","10"],"result":"1024","seq":2}`, string(data))
}

func TestSessionJSON(t *testing.T) {
	data, err := json.Marshal(Session{ID: "id", Name: "demo", CreatedSeq: 0})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"id","name":"demo","created_seq":0}`, string(data))
}
