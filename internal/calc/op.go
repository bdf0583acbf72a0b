package calc

import (
	"math"
	"strings"

	"github.com/roach88/boundreal/internal/algebra"
	"github.com/roach88/boundreal/internal/numerical"
)

// Op names one BoundedReal operation.
type Op string

const (
	OpNeg    Op = "neg"
	OpInv    Op = "inv"
	OpSquare Op = "sq"
	OpAdd    Op = "add"
	OpSub    Op = "sub"
	OpMul    Op = "mul"
	OpDiv    Op = "div"
	OpPow    Op = "pow"
	OpPowInt Op = "powi"
)

// Ops lists every operation in a stable order.
var Ops = []Op{OpNeg, OpInv, OpSquare, OpAdd, OpSub, OpMul, OpDiv, OpPow, OpPowInt}

// opAliases maps the symbolic spellings accepted in programs.
var opAliases = map[string]Op{
	"+": OpAdd,
	"-": OpSub,
	"*": OpMul,
	"/": OpDiv,
	"^": OpPow,
}

// ParseOp resolves an op name or symbol, case-insensitively.
func ParseOp(s string) (Op, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if op, ok := opAliases[s]; ok {
		return op, true
	}
	for _, op := range Ops {
		if string(op) == s {
			return op, true
		}
	}
	return "", false
}

// Arity returns the number of operands op consumes, or 0 for an unknown op.
// Aliases report the arity of the op they resolve to.
func (op Op) Arity() int {
	resolved, ok := ParseOp(string(op))
	if !ok {
		return 0
	}
	switch resolved {
	case OpNeg, OpInv, OpSquare:
		return 1
	default:
		return 2
	}
}

// Apply runs op on its operands. The first operand is the left-hand side
// (the base for pow and powi). Aliases dispatch to the op they resolve to.
func (op Op) Apply(operands ...numerical.BoundedReal) (numerical.BoundedReal, error) {
	resolved, ok := ParseOp(string(op))
	if !ok {
		return numerical.BoundedReal{}, newEvalError(ErrCodeUnknownOp, -1, "unknown op %q", op)
	}
	if len(operands) != resolved.Arity() {
		return numerical.BoundedReal{}, newEvalError(ErrCodeArity, -1,
			"%s takes %d operand(s), got %d", resolved, resolved.Arity(), len(operands))
	}

	a := operands[0]
	switch resolved {
	case OpNeg:
		return a.Negate(), nil
	case OpInv:
		return a.Inverse(), nil
	case OpSquare:
		return algebra.Square(a), nil
	}

	b := operands[1]
	switch resolved {
	case OpAdd:
		return a.Add(b), nil
	case OpSub:
		return a.Sub(b), nil
	case OpMul:
		return a.Mul(b), nil
	case OpDiv:
		return a.Div(b), nil
	case OpPow:
		return a.Pow(b.Float64()), nil
	case OpPowInt:
		e := b.Float64()
		if e != math.Trunc(e) {
			return numerical.BoundedReal{}, newEvalError(ErrCodeNonIntegralExponent, -1,
				"powi exponent must be an integer, got %s", b)
		}
		if math.Abs(e) > math.MaxInt32 {
			// Integral but beyond int range; Pow gives the same value.
			return a.Pow(e), nil
		}
		return a.PowInt(int(e)), nil
	}
	return numerical.BoundedReal{}, newEvalError(ErrCodeUnknownOp, -1, "unknown op %q", op)
}
