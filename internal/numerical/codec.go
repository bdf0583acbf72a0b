package numerical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax is returned when text does not describe a number.
var ErrSyntax = errors.New("invalid number syntax")

// Parse reads a decimal or exponent-form number and normalizes it.
// Out-of-range text saturates like any other construction; "NaN" yields 0.
// Only malformed text is an error.
func Parse(s string) (BoundedReal, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return BoundedReal{}, fmt.Errorf("%w: %q", ErrSyntax, s)
	}
	return New(f), nil
}

// MustParse is like Parse but panics on error.
// Use only in tests or with literal input.
func MustParse(s string) BoundedReal {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// MarshalText implements encoding.TextMarshaler.
func (a BoundedReal) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *BoundedReal) UnmarshalText(text []byte) error {
	r, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = r
	return nil
}

// MarshalJSON encodes the value as a JSON number.
func (a BoundedReal) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, a.v, 'g', -1, 64), nil
}

// UnmarshalJSON accepts a JSON number or a JSON string holding a number.
// null leaves the receiver unchanged.
func (a *BoundedReal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		return a.UnmarshalText([]byte(s))
	}
	return a.UnmarshalText(data)
}
