package numerical

import (
	"cmp"
	"math"
	"strconv"

	"github.com/roach88/boundreal/internal/algebra"
)

// Bound is the largest magnitude a BoundedReal can hold.
const Bound = 1e20

// Number is any Go integer or floating point kind accepted by New.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

var _ algebra.Real[BoundedReal] = BoundedReal{}

// BoundedReal is an immutable real number in [-Bound, Bound] that is never NaN.
// The zero value is 0.
type BoundedReal struct {
	v float64
}

// New normalizes n into a BoundedReal.
func New[N Number](n N) BoundedReal {
	return BoundedReal{v: normalize(float64(n))}
}

// Zero returns the additive identity.
func Zero() BoundedReal {
	return BoundedReal{}
}

// One returns the multiplicative identity.
func One() BoundedReal {
	return BoundedReal{v: 1}
}

// normalize maps any float64 onto the bounded range.
func normalize(f float64) float64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f > Bound:
		return Bound
	case f < -Bound:
		return -Bound
	}
	// -0 + 0 == +0
	return f + 0
}

// Float64 returns the underlying value.
func (a BoundedReal) Float64() float64 {
	return a.v
}

// String formats the value the way strconv formats any float64.
// Saturated values print as the bound itself ("1e+20").
func (a BoundedReal) String() string {
	return strconv.FormatFloat(a.v, 'g', -1, 64)
}

// Negate returns -a.
func (a BoundedReal) Negate() BoundedReal {
	return New(-a.v)
}

// Inverse returns 1/a. The inverse of zero saturates to Bound.
func (a BoundedReal) Inverse() BoundedReal {
	return New(1 / a.v)
}

// Add returns a+b.
func (a BoundedReal) Add(b BoundedReal) BoundedReal {
	return New(a.v + b.v)
}

// AddFloat returns a+f.
func (a BoundedReal) AddFloat(f float64) BoundedReal {
	return New(a.v + f)
}

// Sub returns a-b.
func (a BoundedReal) Sub(b BoundedReal) BoundedReal {
	return New(a.v - b.v)
}

// SubFloat returns a-f.
func (a BoundedReal) SubFloat(f float64) BoundedReal {
	return New(a.v - f)
}

// Mul returns a*b.
func (a BoundedReal) Mul(b BoundedReal) BoundedReal {
	return New(a.v * b.v)
}

// MulFloat returns a*f.
func (a BoundedReal) MulFloat(f float64) BoundedReal {
	return New(a.v * f)
}

// MulInt returns a*n.
func (a BoundedReal) MulInt(n int64) BoundedReal {
	return New(a.v * float64(n))
}

// Div returns a/b. Dividing a nonzero value by zero saturates; 0/0 is 0.
func (a BoundedReal) Div(b BoundedReal) BoundedReal {
	return New(a.v / b.v)
}

// DivFloat returns a/f.
func (a BoundedReal) DivFloat(f float64) BoundedReal {
	return New(a.v / f)
}

// PowInt returns a raised to the integer power e.
func (a BoundedReal) PowInt(e int) BoundedReal {
	return New(math.Pow(a.v, float64(e)))
}

// Pow returns a raised to the power e, following math.Pow.
// A negative base with a fractional exponent yields 0.
func (a BoundedReal) Pow(e float64) BoundedReal {
	return New(math.Pow(a.v, e))
}

// Equal reports whether a and b hold the same value.
func (a BoundedReal) Equal(b BoundedReal) bool {
	return a.v == b.v
}

// Cmp returns -1, 0 or +1 depending on whether a is less than, equal to,
// or greater than b.
func (a BoundedReal) Cmp(b BoundedReal) int {
	return cmp.Compare(a.v, b.v)
}

// IsSaturated reports whether a sits on either bound.
func (a BoundedReal) IsSaturated() bool {
	return a.v == Bound || a.v == -Bound
}
