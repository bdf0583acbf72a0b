package calc

import (
	"strings"

	"github.com/roach88/boundreal/internal/numerical"
)

// Instruction is either a literal push or an op application.
type Instruction struct {
	// Op is empty for a push.
	Op Op

	// Literal is the pushed value (pushes only).
	Literal numerical.BoundedReal
}

// Push returns an instruction that pushes r.
func Push(r numerical.BoundedReal) Instruction {
	return Instruction{Literal: r}
}

// Apply returns an instruction that applies op to the top of the stack.
func Apply(op Op) Instruction {
	return Instruction{Op: op}
}

// IsPush reports whether the instruction pushes a literal.
func (in Instruction) IsPush() bool {
	return in.Op == ""
}

// String returns the token form of the instruction.
func (in Instruction) String() string {
	if in.IsPush() {
		return in.Literal.String()
	}
	return string(in.Op)
}

// Program is a named postfix sequence of instructions.
type Program struct {
	Name         string
	Description  string
	Instructions []Instruction

	// Expect is the declared result, if any. Run does not check it; callers
	// compare it against Result.Value.
	Expect *numerical.BoundedReal
}

// ParseRPN builds a program from postfix tokens. Tokens that parse as
// numbers are pushes; everything else must be an op name or symbol.
//
//	ParseRPN("square", []string{"2", "10", "pow"})
func ParseRPN(name string, tokens []string) (*Program, error) {
	p := &Program{Name: name}
	for i, tok := range tokens {
		in, err := parseToken(tok)
		if err != nil {
			err.Program = name
			err.Index = i
			return nil, err
		}
		p.Instructions = append(p.Instructions, in)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseExpression splits a whitespace-separated postfix expression and
// parses it with ParseRPN.
func ParseExpression(name, expr string) (*Program, error) {
	return ParseRPN(name, strings.Fields(expr))
}

// ParseToken parses a single postfix token: an op name or symbol, or a
// number.
func ParseToken(tok string) (Instruction, error) {
	in, err := parseToken(tok)
	if err != nil {
		return Instruction{}, err
	}
	return in, nil
}

func parseToken(tok string) (Instruction, *EvalError) {
	if op, ok := ParseOp(tok); ok {
		return Apply(op), nil
	}
	r, err := numerical.Parse(tok)
	if err != nil {
		return Instruction{}, newEvalError(ErrCodeUnknownOp, -1, "unknown token %q", tok)
	}
	return Push(r), nil
}

// Validate checks the stack discipline without evaluating anything: every
// op must find enough operands and exactly one value must remain. Op aliases
// are rewritten to their canonical names so recorded steps always carry them.
func (p *Program) Validate() error {
	if len(p.Instructions) == 0 {
		return p.errorAt(ErrCodeEmptyProgram, -1, "program has no instructions")
	}

	depth := 0
	for i, in := range p.Instructions {
		if in.IsPush() {
			depth++
			continue
		}
		op, ok := ParseOp(string(in.Op))
		if !ok {
			return p.errorAt(ErrCodeUnknownOp, i, "unknown op %q", in.Op)
		}
		p.Instructions[i].Op = op
		in.Op = op
		if depth < in.Op.Arity() {
			return p.errorAt(ErrCodeStackUnderflow, i,
				"%s needs %d operand(s), stack has %d", in.Op, in.Op.Arity(), depth)
		}
		depth -= in.Op.Arity() - 1
	}

	if depth != 1 {
		return p.errorAt(ErrCodeUnbalanced, -1, "program leaves %d values on the stack", depth)
	}
	return nil
}

// Tokens returns the program in postfix token form.
func (p *Program) Tokens() []string {
	out := make([]string, len(p.Instructions))
	for i, in := range p.Instructions {
		out[i] = in.String()
	}
	return out
}

// String returns the tokens joined by spaces.
func (p *Program) String() string {
	return strings.Join(p.Tokens(), " ")
}

func (p *Program) errorAt(code EvalErrorCode, index int, format string, args ...any) *EvalError {
	err := newEvalError(code, index, format, args...)
	err.Program = p.Name
	return err
}

// Ops returns the number of op instructions, which is the number of steps
// a run records.
func (p *Program) Ops() int {
	n := 0
	for _, in := range p.Instructions {
		if !in.IsPush() {
			n++
		}
	}
	return n
}
