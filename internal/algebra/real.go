// Package algebra defines the scalar capability that expression code is
// generic over, plus a few folds that only need that capability.
package algebra

// Real is the closed set of operations a scalar type must provide to be a
// leaf value: additive and multiplicative structure, inversion, and integer
// exponentiation. Implementations are value types; every method returns a
// new T and leaves the receiver unchanged.
//
// numerical.BoundedReal is the reference implementation.
type Real[T any] interface {
	Negate() T
	Inverse() T
	Add(T) T
	Sub(T) T
	Mul(T) T
	Div(T) T
	PowInt(int) T
}

// Sum folds xs with Add starting from zero.
func Sum[T Real[T]](zero T, xs ...T) T {
	acc := zero
	for _, x := range xs {
		acc = acc.Add(x)
	}
	return acc
}

// Product folds xs with Mul starting from one.
func Product[T Real[T]](one T, xs ...T) T {
	acc := one
	for _, x := range xs {
		acc = acc.Mul(x)
	}
	return acc
}

// Square returns x*x.
func Square[T Real[T]](x T) T {
	return x.Mul(x)
}

// Horner evaluates the polynomial with the given coefficients at x.
// Coefficients run from the highest degree down to the constant term, so
// Horner(zero, x, 2, 0, 1) is 2x²+1. With no coefficients the result is zero.
func Horner[T Real[T]](zero, x T, coeffs ...T) T {
	acc := zero
	for _, c := range coeffs {
		acc = acc.Mul(x).Add(c)
	}
	return acc
}

// Quotient returns a/b computed as a * b⁻¹.
// For saturating scalars this can differ from a.Div(b) at the bounds.
func Quotient[T Real[T]](a, b T) T {
	return a.Mul(b.Inverse())
}
