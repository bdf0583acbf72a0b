package ir

import "github.com/roach88/boundreal/internal/numerical"

// Session groups the steps of one evaluation run.
type Session struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CreatedSeq int64  `json:"created_seq"`
}

// Step records one applied operation: its inputs, its normalized result and
// its position on the session's logical clock.
type Step struct {
	ID        string                  `json:"id"` // content-addressed via StepID
	SessionID string                  `json:"session_id"`
	Seq       int64                   `json:"seq"`
	Op        string                  `json:"op"`
	Operands  []numerical.BoundedReal `json:"operands"`
	Result    numerical.BoundedReal   `json:"result"`
}

// CanonicalFields returns the step without its ID and session, as used in
// golden traces where only the arithmetic matters.
func (s Step) CanonicalFields() IRObject {
	return IRObject{
		"seq":      IRInt(s.Seq),
		"op":       IRString(s.Op),
		"operands": NewIRRealArray(s.Operands),
		"result":   IRReal(s.Result),
	}
}
