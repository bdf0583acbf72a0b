package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/boundreal/internal/ir"
	"github.com/roach88/boundreal/internal/numerical"
)

// marshalOperands converts operands to canonical JSON TEXT for storage.
func marshalOperands(operands []numerical.BoundedReal) (string, error) {
	data, err := ir.MarshalCanonical(ir.NewIRRealArray(operands))
	if err != nil {
		return "", fmt.Errorf("marshal operands: %w", err)
	}
	return string(data), nil
}

// unmarshalOperands parses stored operands. Each element is a JSON string
// decoded through numerical.Parse, so values stay normalized.
func unmarshalOperands(data string) ([]numerical.BoundedReal, error) {
	operands := []numerical.BoundedReal{}
	if data == "" || data == "[]" {
		return operands, nil
	}
	if err := json.Unmarshal([]byte(data), &operands); err != nil {
		return nil, fmt.Errorf("unmarshal operands: %w", err)
	}
	return operands, nil
}

func unmarshalResult(data string) (numerical.BoundedReal, error) {
	r, err := numerical.Parse(data)
	if err != nil {
		return numerical.BoundedReal{}, fmt.Errorf("unmarshal result: %w", err)
	}
	return r, nil
}
