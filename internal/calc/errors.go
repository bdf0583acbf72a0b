package calc

import (
	"errors"
	"fmt"
)

// EvalError reports a malformed program or a failed recording.
// Arithmetic itself never produces an EvalError.
type EvalError struct {
	// Code identifies the error category.
	Code EvalErrorCode

	// Message is a human-readable description.
	Message string

	// Program names the program being evaluated, if any.
	Program string

	// Index is the instruction index the error refers to, or -1.
	Index int

	// Err is the underlying cause (RECORD_FAILED only).
	Err error
}

// EvalErrorCode categorizes evaluation errors.
type EvalErrorCode string

const (
	// ErrCodeUnknownOp indicates a token that is neither a number nor an op.
	ErrCodeUnknownOp EvalErrorCode = "UNKNOWN_OP"

	// ErrCodeStackUnderflow indicates an op with too few operands on the stack.
	ErrCodeStackUnderflow EvalErrorCode = "STACK_UNDERFLOW"

	// ErrCodeUnbalanced indicates a program that leaves other than one value.
	ErrCodeUnbalanced EvalErrorCode = "UNBALANCED_PROGRAM"

	// ErrCodeEmptyProgram indicates a program with no instructions.
	ErrCodeEmptyProgram EvalErrorCode = "EMPTY_PROGRAM"

	// ErrCodeArity indicates Apply was called with the wrong operand count.
	ErrCodeArity EvalErrorCode = "ARITY_MISMATCH"

	// ErrCodeNonIntegralExponent indicates powi with a fractional exponent.
	ErrCodeNonIntegralExponent EvalErrorCode = "NON_INTEGRAL_EXPONENT"

	// ErrCodeQuotaExceeded indicates a program longer than the step quota.
	ErrCodeQuotaExceeded EvalErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeRecordFailed indicates the recorder rejected a step.
	ErrCodeRecordFailed EvalErrorCode = "RECORD_FAILED"
)

// Error implements the error interface.
func (e *EvalError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Program != "" {
		msg += fmt.Sprintf(" (program=%s", e.Program)
		if e.Index >= 0 {
			msg += fmt.Sprintf(", instruction=%d", e.Index)
		}
		msg += ")"
	} else if e.Index >= 0 {
		msg += fmt.Sprintf(" (instruction=%d)", e.Index)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *EvalError) Unwrap() error {
	return e.Err
}

// IsEvalError reports whether err is an EvalError with the given code.
// Uses errors.As to handle wrapped errors.
func IsEvalError(err error, code EvalErrorCode) bool {
	var ee *EvalError
	if errors.As(err, &ee) {
		return ee.Code == code
	}
	return false
}

func newEvalError(code EvalErrorCode, index int, format string, args ...any) *EvalError {
	return &EvalError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Index:   index,
	}
}
