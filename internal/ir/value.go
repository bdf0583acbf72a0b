package ir

import (
	"slices"
	"unicode/utf16"

	"github.com/roach88/boundreal/internal/numerical"
)

// IRValue is a sealed interface over the value kinds allowed in canonical
// records. Only IRString, IRInt, IRBool, IRReal, IRArray and IRObject
// implement it.
type IRValue interface {
	irValue()
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRReal carries a bounded real. It is always encoded as a string so the
// canonical bytes do not depend on any JSON number formatting rules.
type IRReal numerical.BoundedReal

func (IRReal) irValue() {}

// Real returns the wrapped value.
func (r IRReal) Real() numerical.BoundedReal {
	return numerical.BoundedReal(r)
}

// IRArray represents an array of IRValue elements.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to IRValue elements.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// NewIRReal wraps a bounded real.
func NewIRReal(r numerical.BoundedReal) IRReal {
	return IRReal(r)
}

// NewIRRealArray wraps each real in order.
func NewIRRealArray(rs []numerical.BoundedReal) IRArray {
	arr := make(IRArray, len(rs))
	for i, r := range rs {
		arr[i] = IRReal(r)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's native string order compares UTF-8 bytes, which differs for
// characters outside the BMP.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units.
func compareKeysRFC8785(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}
