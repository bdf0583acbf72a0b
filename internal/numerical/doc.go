// Package numerical provides BoundedReal, the leaf scalar of the algebra.
//
// A BoundedReal is a float64 that is never NaN and never leaves the closed
// range [-Bound, Bound]. Every construction, including the ones performed
// inside arithmetic methods, passes through the same normalization:
//
//   - NaN becomes 0
//   - values above Bound become Bound
//   - values below -Bound become -Bound
//   - everything else is kept as is (negative zero folds to zero)
//
// Because results are renormalized, the invariant is closed under every
// operation and no method returns an error. Division by zero saturates,
// 0/0 collapses to 0, and invalid powers collapse to 0.
//
// # Operations
//
// Go has no operator overloading, so each arithmetic form is a named method.
// Methods taking another BoundedReal satisfy algebra.Real; the *Float and
// MulInt variants cover bare numeric operands.
//
//	a := numerical.New(1e19)
//	a.Mul(a)                    // 1e+20, saturated
//	numerical.New(2).PowInt(10) // 1024
//	numerical.New(0).Inverse()  // 1e+20
package numerical
