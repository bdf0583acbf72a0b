package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScenario(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: demo
description: "demo scenario"
session: demo-session
cases:
  - name: list_form
    program: [2, 10, pow]
    expect: 1024
    steps: 1
  - name: string_form
    program: "0 inv"
    expect: 1e20
    saturated: true
  - name: specials
    program: [.nan, .inf, add, -.inf, add]
    expect: .nan
  - name: failing
    program: [add]
    expect_error: STACK_UNDERFLOW
`))
	require.NoError(t, err)

	assert.Equal(t, "demo", s.Name)
	assert.Equal(t, "demo-session", s.Session)
	require.Len(t, s.Cases, 4)

	assert.Equal(t, Tokens{"2", "10", "pow"}, s.Cases[0].Program)
	assert.Equal(t, 1024.0, s.Cases[0].Expect.Float64())
	require.NotNil(t, s.Cases[0].Steps)
	assert.Equal(t, 1, *s.Cases[0].Steps)

	assert.Equal(t, Tokens{"0", "inv"}, s.Cases[1].Program)
	require.NotNil(t, s.Cases[1].Saturated)
	assert.True(t, *s.Cases[1].Saturated)

	assert.Equal(t, []string{"NaN", "+Inf", "add", "-Inf", "add"}, s.Cases[2].Program.Normalized())
	assert.Equal(t, 0.0, s.Cases[2].Expect.Float64())

	assert.Nil(t, s.Cases[3].Expect)
	assert.Equal(t, "STACK_UNDERFLOW", s.Cases[3].ExpectError)
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "typo"
case:
  - name: x
    program: [1]
    expect: 1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"missing name", `description: d
cases: [{name: a, program: [1], expect: 1}]`, "name is required"},
		{"missing description", `name: n
cases: [{name: a, program: [1], expect: 1}]`, "description is required"},
		{"no cases", `name: n
description: d`, "cases list is required"},
		{"case without name", `name: n
description: d
cases: [{program: [1], expect: 1}]`, "cases[0]: name is required"},
		{"duplicate case", `name: n
description: d
cases: [{name: a, program: [1], expect: 1}, {name: a, program: [2], expect: 2}]`, "duplicate case name"},
		{"empty program", `name: n
description: d
cases: [{name: a, program: [], expect: 1}]`, "program is required"},
		{"no expectation", `name: n
description: d
cases: [{name: a, program: [1]}]`, "exactly one of expect and expect_error"},
		{"both expectations", `name: n
description: d
cases: [{name: a, program: [1], expect: 1, expect_error: UNKNOWN_OP}]`, "exactly one of expect and expect_error"},
		{"negative tolerance", `name: n
description: d
cases: [{name: a, program: [1], expect: 1, tolerance: -1}]`, "tolerance must be non-negative"},
		{"bad expect", `name: n
description: d
cases: [{name: a, program: [1], expect: one}]`, "invalid number syntax"},
		{"nested program token", `name: n
description: d
cases: [{name: a, program: [[1]], expect: 1}]`, "must be a scalar"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_NotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarios_Directory(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	names := make([]string, len(scenarios))
	for i, s := range scenarios {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"algebra", "errors", "normalization"}, names)
}

func TestLoadScenarios_File(t *testing.T) {
	scenarios, err := LoadScenarios(filepath.Join("testdata", "scenarios", "errors.yaml"))
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "errors", scenarios[0].Name)
}

func TestLoadScenarios_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("x"), 0644))

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenario files")
}
