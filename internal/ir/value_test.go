package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/boundreal/internal/numerical"
)

func TestIRValueSealed(t *testing.T) {
	var _ IRValue = IRString("test")
	var _ IRValue = IRInt(42)
	var _ IRValue = IRBool(true)
	var _ IRValue = IRReal(numerical.New(1))
	var _ IRValue = IRArray{IRString("a"), IRInt(1)}
	var _ IRValue = IRObject{"key": IRString("value")}
}

func TestIRRealRoundTrip(t *testing.T) {
	r := numerical.New(-2.5)
	assert.True(t, NewIRReal(r).Real().Equal(r))
}

func TestNewIRRealArray(t *testing.T) {
	arr := NewIRRealArray([]numerical.BoundedReal{numerical.New(1), numerical.New(1e30)})
	assert.Len(t, arr, 2)

	second, ok := arr[1].(IRReal)
	assert.True(t, ok)
	assert.Equal(t, 1e20, second.Real().Float64())

	assert.Empty(t, NewIRRealArray(nil))
}

func TestIRObjectSortedKeys(t *testing.T) {
	obj := IRObject{
		"zebra":  IRString("z"),
		"apple":  IRString("a"),
		"banana": IRString("b"),
	}

	assert.Equal(t, []string{"apple", "banana", "zebra"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysCaseOrder(t *testing.T) {
	obj := IRObject{
		"a":  IRInt(1),
		"A":  IRInt(2),
		"aa": IRInt(3),
		"aA": IRInt(4),
		"Aa": IRInt(5),
		"AA": IRInt(6),
	}

	// 'A' = 65 < 'a' = 97; a prefix sorts before its extensions.
	assert.Equal(t, []string{"A", "AA", "Aa", "a", "aA", "aa"}, obj.SortedKeys())
}

func TestIRObjectSortedKeysPrefix(t *testing.T) {
	obj := IRObject{"operands": IRInt(1), "op": IRInt(2)}
	assert.Equal(t, []string{"op", "operands"}, obj.SortedKeys())
}

func TestIRObjectEmpty(t *testing.T) {
	assert.Empty(t, IRObject{}.SortedKeys())
}

func TestCompareKeysRFC8785(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"a", "b", -1},
		{"b", "a", 1},
		{"a", "a", 0},
		{"", "a", -1},
		{"ab", "a", 1},
		{"\U00010000", "\uE000", -1},
		{"\uE000", "\U00010000", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, compareKeysRFC8785(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
