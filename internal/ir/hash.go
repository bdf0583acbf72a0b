package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/boundreal/internal/numerical"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainStep = "boundreal/step/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// StepID computes the content-addressed ID for one applied operation.
// The ID is stable across runs given the same session, position and values.
func StepID(sessionID string, seq int64, op string, operands []numerical.BoundedReal, result numerical.BoundedReal) (string, error) {
	obj := IRObject{
		"session_id": IRString(sessionID),
		"seq":        IRInt(seq),
		"op":         IRString(op),
		"operands":   NewIRRealArray(operands),
		"result":     IRReal(result),
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("StepID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainStep, canonical), nil
}

// MustStepID is like StepID but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustStepID(sessionID string, seq int64, op string, operands []numerical.BoundedReal, result numerical.BoundedReal) string {
	id, err := StepID(sessionID, seq, op, operands, result)
	if err != nil {
		panic(err)
	}
	return id
}
