package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/boundreal/internal/numerical"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is the fixed session ID prefix. Each case records under
	// "<session>/<case name>". Defaults to testutil.DefaultSessionID.
	Session string `yaml:"session,omitempty"`

	// Cases are evaluated in order against one store and one clock.
	Cases []Case `yaml:"cases"`
}

// Case is one program with its expected outcome.
type Case struct {
	Name string `yaml:"name"`

	// Program holds postfix tokens.
	Program Tokens `yaml:"program"`

	// Expect is the expected result. Mutually exclusive with ExpectError.
	Expect *Real `yaml:"expect,omitempty"`

	// ExpectError is the expected calc.EvalErrorCode.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Tolerance, when positive, relaxes Expect to an absolute-or-relative
	// comparison.
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Steps is the expected number of recorded steps.
	Steps *int `yaml:"steps,omitempty"`

	// Saturated asserts whether the result equals ±numerical.Bound.
	Saturated *bool `yaml:"saturated,omitempty"`
}

// Tokens is a postfix program. In YAML it is either a sequence of scalars
// or one space-separated string.
type Tokens []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Tokens) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		*t = Tokens(strings.Fields(n.Value))
		return nil
	case yaml.SequenceNode:
		out := make(Tokens, len(n.Content))
		for i, elem := range n.Content {
			if elem.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: program[%d] must be a scalar", elem.Line, i)
			}
			out[i] = elem.Value
		}
		*t = out
		return nil
	default:
		return fmt.Errorf("line %d: program must be a list or a string", n.Line)
	}
}

// Normalized returns the tokens with YAML special floats spelled the way
// numerical.Parse reads them.
func (t Tokens) Normalized() []string {
	out := make([]string, len(t))
	for i, tok := range t {
		out[i] = yamlNumber(tok)
	}
	return out
}

// Real is a BoundedReal read from a YAML scalar.
type Real struct {
	numerical.BoundedReal
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *Real) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a number", n.Line)
	}
	v, err := numerical.Parse(yamlNumber(n.Value))
	if err != nil {
		return fmt.Errorf("line %d: %w", n.Line, err)
	}
	r.BoundedReal = v
	return nil
}

// yamlNumber maps the YAML 1.2 special float spellings to strconv syntax.
func yamlNumber(s string) string {
	switch s {
	case ".nan", ".NaN", ".NAN":
		return "NaN"
	case ".inf", ".Inf", ".INF", "+.inf", "+.Inf", "+.INF":
		return "+Inf"
	case "-.inf", "-.Inf", "-.INF":
		return "-Inf"
	}
	return s
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads one scenario file, or every *.yaml and *.yml file in
// a directory in name order.
func LoadScenarios(path string) ([]*Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return []*Scenario{s}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var files []string
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if !e.IsDir() && (ext == ".yaml" || ext == ".yml") {
			files = append(files, filepath.Join(path, e.Name()))
		}
	}
	slices.Sort(files)
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", path)
	}

	scenarios := make([]*Scenario, 0, len(files))
	for _, f := range files {
		s, err := LoadScenario(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Cases) == 0 {
		return fmt.Errorf("cases list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Cases))
	for i, c := range s.Cases {
		if c.Name == "" {
			return fmt.Errorf("cases[%d]: name is required", i)
		}
		if seen[c.Name] {
			return fmt.Errorf("cases[%d]: duplicate case name %q", i, c.Name)
		}
		seen[c.Name] = true

		if len(c.Program) == 0 {
			return fmt.Errorf("cases[%d]: program is required", i)
		}
		if (c.Expect == nil) == (c.ExpectError == "") {
			return fmt.Errorf("cases[%d]: exactly one of expect and expect_error is required", i)
		}
		if c.Tolerance < 0 {
			return fmt.Errorf("cases[%d]: tolerance must be non-negative", i)
		}
		if c.Tolerance > 0 && c.Expect == nil {
			return fmt.Errorf("cases[%d]: tolerance requires expect", i)
		}
	}
	return nil
}
