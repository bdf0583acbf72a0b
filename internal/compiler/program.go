package compiler

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/boundreal/internal/calc"
	"github.com/roach88/boundreal/internal/numerical"
)

// CompileProgram parses a CUE value into a calc.Program.
// Uses the CUE SDK's Go API directly.
//
// The value is one program struct:
//
//	program: square: {
//		description: "2 to the 10th"
//		steps: [2, 10, "pow"]
//		expect: 1024
//	}
//
// Numeric steps are pushes. String steps are op names, op symbols, or
// numeric text such as "NaN" and "1e400"; all literals are normalized.
func CompileProgram(v cue.Value) (*calc.Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	p := &calc.Program{}
	if sels := v.Path().Selectors(); len(sels) > 0 {
		p.Name = sels[len(sels)-1].Unquoted()
	}

	if d := v.LookupPath(cue.ParsePath("description")); d.Exists() {
		desc, err := d.String()
		if err != nil {
			return nil, &CompileError{
				Code:    ErrCodeInvalidValue,
				Field:   "description",
				Message: "description must be a string",
				Pos:     d.Pos(),
			}
		}
		p.Description = desc
	}

	steps := v.LookupPath(cue.ParsePath("steps"))
	if !steps.Exists() {
		return nil, &CompileError{
			Code:    ErrCodeSteps,
			Field:   "steps",
			Message: "steps is required",
			Pos:     v.Pos(),
		}
	}
	instructions, err := parseSteps(steps)
	if err != nil {
		return nil, err
	}
	p.Instructions = instructions

	if e := v.LookupPath(cue.ParsePath("expect")); e.Exists() {
		r, err := parseReal(e)
		if err != nil {
			return nil, &CompileError{
				Code:    ErrCodeInvalidValue,
				Field:   "expect",
				Message: err.Error(),
				Pos:     e.Pos(),
			}
		}
		p.Expect = &r
	}

	if err := p.Validate(); err != nil {
		return nil, &CompileError{
			Code:    ErrCodeStackShape,
			Field:   "steps",
			Message: err.Error(),
			Pos:     steps.Pos(),
		}
	}

	return p, nil
}

// parseSteps converts the steps list into instructions.
func parseSteps(v cue.Value) ([]calc.Instruction, error) {
	if v.IncompleteKind() != cue.ListKind {
		return nil, &CompileError{
			Code:    ErrCodeSteps,
			Field:   "steps",
			Message: "steps must be a list",
			Pos:     v.Pos(),
		}
	}

	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var out []calc.Instruction
	for i := 0; iter.Next(); i++ {
		field := fmt.Sprintf("steps[%d]", i)
		step := iter.Value()

		switch step.IncompleteKind() {
		case cue.IntKind, cue.FloatKind, cue.NumberKind:
			r, err := parseReal(step)
			if err != nil {
				return nil, &CompileError{Code: ErrCodeInvalidStep, Field: field, Message: err.Error(), Pos: step.Pos()}
			}
			out = append(out, calc.Push(r))

		case cue.StringKind:
			tok, err := step.String()
			if err != nil {
				return nil, formatCUEError(err)
			}
			in, err := calc.ParseToken(tok)
			if err != nil {
				return nil, &CompileError{
					Code:    ErrCodeInvalidStep,
					Field:   field,
					Message: fmt.Sprintf("unknown token %q (ops: %s)", tok, opList()),
					Pos:     step.Pos(),
				}
			}
			out = append(out, in)

		default:
			return nil, &CompileError{
				Code:    ErrCodeInvalidStep,
				Field:   field,
				Message: fmt.Sprintf("step must be a number or a string, got %v", step.IncompleteKind()),
				Pos:     step.Pos(),
			}
		}
	}
	return out, nil
}

// parseReal reads a CUE number or numeric string as a BoundedReal.
// Numbers beyond float64 range saturate like any other out-of-range input.
func parseReal(v cue.Value) (numerical.BoundedReal, error) {
	if v.IncompleteKind() == cue.StringKind {
		s, err := v.String()
		if err != nil {
			return numerical.BoundedReal{}, err
		}
		return numerical.Parse(s)
	}

	f, err := v.Float64()
	switch {
	case err == nil:
	case errors.Is(err, cue.ErrAbove), errors.Is(err, cue.ErrBelow):
		// f is ±Inf or a signed zero.
	default:
		return numerical.BoundedReal{}, fmt.Errorf("not a concrete number: %v", err)
	}
	return numerical.New(f), nil
}

func opList() string {
	names := make([]string, len(calc.Ops))
	for i, op := range calc.Ops {
		names[i] = string(op)
	}
	return strings.Join(names, ", ")
}

// CompilePrograms compiles every field under the top-level "program" struct.
// Programs are returned sorted by name. All compile errors are collected
// and returned joined, alongside the programs that did compile.
func CompilePrograms(v cue.Value) ([]*calc.Program, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	programsVal := v.LookupPath(cue.ParsePath("program"))
	if !programsVal.Exists() {
		return nil, &CompileError{
			Code:    ErrCodeNoPrograms,
			Field:   "program",
			Message: "no programs defined",
			Pos:     v.Pos(),
		}
	}

	iter, err := programsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var (
		programs []*calc.Program
		errs     []error
	)
	for iter.Next() {
		p, err := CompileProgram(iter.Value())
		if err != nil {
			errs = append(errs, fmt.Errorf("program.%s: %w", iter.Selector().Unquoted(), err))
			continue
		}
		programs = append(programs, p)
	}

	slices.SortFunc(programs, func(a, b *calc.Program) int {
		return strings.Compare(a.Name, b.Name)
	})

	return programs, errors.Join(errs...)
}
