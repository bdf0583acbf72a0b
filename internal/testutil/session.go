package testutil

// DefaultSessionID is used when a scenario names no session.
const DefaultSessionID = "test-session-default"

// FixedSessionGenerator returns the same session ID every time.
// It satisfies calc.SessionGenerator and never runs out, unlike
// calc.FixedGenerator.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for id, or for
// DefaultSessionID when id is empty.
//
// The ID is usually set in scenario YAML:
//
//	session: "saturation-00000000-0000-0000-0000-000000000001"
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = DefaultSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed session ID.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
